package config

import (
	"sync"
)

// GeminiConfig holds the single credential that switches the AI gateway
// between online and offline mode, plus provider wiring that lives outside it.
type GeminiConfig struct {
	APIKey   string
	Provider string
	Model    string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		v := env()
		geminiConfig = &GeminiConfig{
			APIKey:   v.GetString("GEMINI_API_KEY"),
			Provider: v.GetString("AI_PROVIDER"),
			Model:    v.GetString("AI_MODEL"),
		}
	})
	return geminiConfig
}

func (c *GeminiConfig) Online() bool {
	return c.APIKey != ""
}
