package model

type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepInProgress StepStatus = "in-progress"
	StepCompleted  StepStatus = "completed"
)

type StepType string

const (
	StepSkill    StepType = "skill"
	StepProject  StepType = "project"
	StepBranding StepType = "branding"
)

type RoadmapStep struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    string     `json:"duration"`
	Status      StepStatus `json:"status"`
	Type        StepType   `json:"type"`
}

func (s StepStatus) Valid() bool {
	switch s {
	case StepPending, StepInProgress, StepCompleted:
		return true
	}
	return false
}

// StarterRoadmap is the plan every new session begins with, before any
// analysis has produced a tailored one.
func StarterRoadmap() []RoadmapStep {
	return []RoadmapStep{
		{
			ID:          "1",
			Title:       "Optimize GitHub Profile",
			Description: "Pin your best 3 repositories and write a comprehensive README for each.",
			Duration:    "2 days",
			Status:      StepInProgress,
			Type:        StepBranding,
		},
		{
			ID:          "2",
			Title:       "Learn TypeScript Generics",
			Description: "Deep dive into advanced generic patterns to improve code reusability.",
			Duration:    "1 week",
			Status:      StepPending,
			Type:        StepSkill,
		},
		{
			ID:          "3",
			Title:       "Build a SaaS Dashboard Case Study",
			Description: "Create a complex dashboard showing data visualization skills.",
			Duration:    "2 weeks",
			Status:      StepPending,
			Type:        StepProject,
		},
	}
}
