package config

import (
	"sync"
	"time"
)

// OpenRouterConfig is read only when AI_PROVIDER=openrouter. SiteURL and
// AppTitle are sent as the attribution headers OpenRouter ranks apps by.
type OpenRouterConfig struct {
	APIKey   string
	Model    string
	BaseURL  string
	SiteURL  string
	AppTitle string
	Timeout  time.Duration
}

var (
	openRouterConfig *OpenRouterConfig
	openRouterOnce   sync.Once
)

func LoadOpenRouterConfig() *OpenRouterConfig {
	openRouterOnce.Do(func() {
		v := env()
		openRouterConfig = &OpenRouterConfig{
			APIKey:   v.GetString("OPENROUTER_API_KEY"),
			Model:    v.GetString("OPENROUTER_MODEL"),
			BaseURL:  v.GetString("OPENROUTER_BASE_URL"),
			SiteURL:  v.GetString("APP_URL"),
			AppTitle: v.GetString("APP_NAME"),
			Timeout:  v.GetDuration("OPENROUTER_TIMEOUT"),
		}
	})
	return openRouterConfig
}

func (c *OpenRouterConfig) Enabled() bool {
	return c.APIKey != ""
}
