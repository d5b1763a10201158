package model

// Profile is the freelancer's self-reported professional data.
type Profile struct {
	Name            string   `json:"name"`
	Title           string   `json:"title"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experienceYears"`
	HourlyRate      float64  `json:"hourlyRate"`
	GithubUsername  string   `json:"githubUsername,omitempty"`
	PortfolioURL    string   `json:"portfolioUrl,omitempty"`
	Email           string   `json:"email,omitempty"`
	Location        string   `json:"location,omitempty"`
	AvatarURL       string   `json:"avatarUrl,omitempty"`
}

// DisplayName falls back to a generic label for unnamed profiles.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "Freelancer"
	}
	return p.Name
}
