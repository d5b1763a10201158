package model

type PricingSuggestion struct {
	Current     float64 `json:"current"`
	Recommended float64 `json:"recommended"`
	Reasoning   string  `json:"reasoning"`
}

type AnalysisMetrics struct {
	PortfolioScore     float64 `json:"portfolioScore"`
	GithubScore        float64 `json:"githubScore"`
	CommunicationScore float64 `json:"communicationScore"`
	TechStackScore     float64 `json:"techStackScore"`
}

// AnalysisResult is the scored assessment of a profile. A newer analysis
// replaces an older one wholesale.
type AnalysisResult struct {
	GlobalReadinessScore float64           `json:"globalReadinessScore"`
	MarketPercentile     float64           `json:"marketPercentile"`
	ProjectedEarnings    float64           `json:"projectedEarnings"`
	Strengths            []string          `json:"strengths"`
	Weaknesses           []string          `json:"weaknesses"`
	Opportunities        []string          `json:"opportunities"`
	Threats              []string          `json:"threats"`
	SkillGaps            []string          `json:"skillGaps"`
	PricingSuggestion    PricingSuggestion `json:"pricingSuggestion"`
	Metrics              AnalysisMetrics   `json:"metrics"`
}

func (a *AnalysisResult) HasSkillGaps() bool {
	return a != nil && len(a.SkillGaps) > 0
}
