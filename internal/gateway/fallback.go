package gateway

import (
	"fmt"

	"github.com/fadilmartias/fairfound-coach/internal/model"
)

// Fixed substitutes used when no generative capability is configured. They
// are deterministic so the rest of the system can be exercised offline.

const PricingMultiplier = 1.25

func FallbackAnalysis(p model.Profile) *model.AnalysisResult {
	return &model.AnalysisResult{
		GlobalReadinessScore: 78,
		MarketPercentile:     65,
		ProjectedEarnings:    85000,
		Strengths:            []string{"Strong React fundamentals", "Good communication style"},
		Weaknesses:           []string{"Lack of backend knowledge", "Portfolio is generic"},
		Opportunities:        []string{"High demand for Fullstack", "SaaS niche"},
		Threats:              []string{"AI code generation saturation"},
		SkillGaps:            []string{"Next.js", "PostgreSQL", "System Design"},
		PricingSuggestion: model.PricingSuggestion{
			Current:     p.HourlyRate,
			Recommended: p.HourlyRate * PricingMultiplier,
			Reasoning:   "Your skill set is in high demand, but your packaging needs work.",
		},
		Metrics: model.AnalysisMetrics{
			PortfolioScore:     60,
			GithubScore:        75,
			CommunicationScore: 85,
			TechStackScore:     80,
		},
	}
}

// FallbackRoadmap is deliberately empty: offline mode never replaces the
// session's existing roadmap.
func FallbackRoadmap() []model.RoadmapStep {
	return []model.RoadmapStep{}
}

func FallbackProposal(p model.Profile, clientName string) string {
	return fmt.Sprintf("Dear %s,\n\nThis is a mock proposal because no API key was provided. I am writing to express my interest in your project.\n\nBest,\n%s",
		clientOrDefault(clientName), p.DisplayName())
}

func FallbackPortfolio() *model.PortfolioContent {
	return &model.PortfolioContent{
		Tagline: "Building digital experiences that matter.",
		About:   "I am a passionate developer focusing on creating intuitive and performant web applications.",
		Projects: []model.PortfolioProject{
			{
				Title:       "E-commerce Dashboard",
				Description: "A high-performance analytics dashboard using React and D3.",
				Tags:        []string{"React", "D3", "Node"},
			},
			{
				Title:       "Social API",
				Description: "Scalable backend architecture for a social network.",
				Tags:        []string{"PostgreSQL", "Redis", "Go"},
			},
		},
	}
}

func FallbackTasks(focusArea string) []model.Task {
	return []model.Task{
		{
			ID:          "1",
			Title:       fmt.Sprintf("Complete %s Tutorial", focusArea),
			Description: "Go through the official documentation and build a small example.",
			DueDate:     "2023-11-01",
			Status:      model.TaskPending,
		},
		{
			ID:          "2",
			Title:       "Code Review Prep",
			Description: "Refactor your recent project to clean up the component structure.",
			DueDate:     "2023-11-03",
			Status:      model.TaskPending,
		},
	}
}

func FallbackFeedback() string {
	return "Great job! Your code is clean, but consider handling edge cases."
}

func clientOrDefault(clientName string) string {
	if clientName == "" {
		return "Hiring Manager"
	}
	return clientName
}
