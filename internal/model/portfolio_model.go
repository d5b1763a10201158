package model

type PortfolioProject struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

type PortfolioContent struct {
	Tagline  string             `json:"tagline"`
	About    string             `json:"about"`
	Projects []PortfolioProject `json:"projects"`
}
