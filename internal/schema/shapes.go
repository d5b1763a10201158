package schema

import "github.com/fadilmartias/fairfound-coach/internal/model"

func score(name string) Field { return Number(name).Range(0, 100) }

var AnalysisShape = Shape{
	Name: "analysis",
	Root: Object("analysis",
		score("globalReadinessScore").Describe("overall market readiness, 0-100"),
		score("marketPercentile").Describe("percentile against comparable freelancers, 0-100"),
		Number("projectedEarnings").AtLeast(0).Describe("projected annual earnings in USD"),
		StringList("strengths"),
		StringList("weaknesses"),
		StringList("opportunities"),
		StringList("threats"),
		StringList("skillGaps").Describe("missing competencies, most important first"),
		Object("pricingSuggestion",
			Number("current").AtLeast(0),
			Number("recommended").AtLeast(0),
			String("reasoning"),
		),
		Object("metrics",
			score("portfolioScore"),
			score("githubScore"),
			score("communicationScore"),
			score("techStackScore"),
		),
	),
}

var RoadmapShape = Shape{
	Name: "roadmap",
	Root: ObjectList("roadmap",
		String("id"),
		String("title"),
		String("description"),
		String("duration"),
		Enum("status", string(model.StepPending), string(model.StepInProgress), string(model.StepCompleted)),
		Enum("type", string(model.StepSkill), string(model.StepProject), string(model.StepBranding)),
	).Unique("id"),
}

var PortfolioShape = Shape{
	Name: "portfolio",
	Root: Object("portfolio",
		String("tagline"),
		String("about"),
		ObjectList("projects",
			String("title"),
			String("description"),
			StringList("tags"),
		),
	),
}

var TaskListShape = Shape{
	Name: "tasks",
	Root: ObjectList("tasks",
		String("id"),
		String("title"),
		String("description"),
		String("dueDate"),
		Enum("status", string(model.TaskPending), string(model.TaskReview), string(model.TaskCompleted)).Opt(),
		String("feedback").Opt(),
	),
}
