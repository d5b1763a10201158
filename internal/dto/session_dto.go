package dto

import (
	"strings"

	"github.com/fadilmartias/fairfound-coach/internal/model"
)

type ProfileRequest struct {
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRate      float64  `json:"hourlyRate"`
	GithubUsername  string   `json:"githubUsername"`
	PortfolioURL    string   `json:"portfolioUrl"`
	Email           string   `json:"email"`
	Location        string   `json:"location"`
	AvatarURL       string   `json:"avatarUrl"`
}

// Validate returns field errors keyed by JSON name. An empty map means valid.
func (r ProfileRequest) Validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		errs["name"] = "name is required"
	}
	if strings.TrimSpace(r.Title) == "" {
		errs["title"] = "title is required"
	}
	if r.ExperienceYears < 0 {
		errs["experienceYears"] = "experienceYears must not be negative"
	}
	if r.HourlyRate <= 0 {
		errs["hourlyRate"] = "hourlyRate must be greater than zero"
	}
	return errs
}

// ToModel trims input and drops duplicate skills, keeping first occurrence.
func (r ProfileRequest) ToModel() model.Profile {
	seen := map[string]bool{}
	skills := []string{}
	for _, s := range r.Skills {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || seen[key] {
			continue
		}
		seen[key] = true
		skills = append(skills, s)
	}
	return model.Profile{
		Name:            strings.TrimSpace(r.Name),
		Title:           strings.TrimSpace(r.Title),
		Bio:             strings.TrimSpace(r.Bio),
		Skills:          skills,
		ExperienceYears: r.ExperienceYears,
		HourlyRate:      r.HourlyRate,
		GithubUsername:  strings.TrimSpace(r.GithubUsername),
		PortfolioURL:    strings.TrimSpace(r.PortfolioURL),
		Email:           strings.TrimSpace(r.Email),
		Location:        strings.TrimSpace(r.Location),
		AvatarURL:       strings.TrimSpace(r.AvatarURL),
	}
}

type StepStatusRequest struct {
	Status model.StepStatus `json:"status"`
}

type ProposalRequest struct {
	JobDescription string `json:"jobDescription"`
	Tone           string `json:"tone"`
	ClientName     string `json:"clientName"`
}

type ProposalResponse struct {
	Proposal string `json:"proposal"`
}
