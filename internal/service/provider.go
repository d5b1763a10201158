package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/config"
	"github.com/fadilmartias/fairfound-coach/internal/logger"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

type ProviderOptions struct {
	Provider        string
	GeminiAPIKey    string
	GeminiModel     string
	OpenRouterKey   string
	OpenRouterModel string
	OpenRouterURL   string
	SiteURL         string
	AppTitle        string
	Timeout         time.Duration
}

// OptionsFromConfig assembles provider options from the loaded env config.
func OptionsFromConfig(ai *config.GeminiConfig, or *config.OpenRouterConfig) ProviderOptions {
	return ProviderOptions{
		Provider:        ai.Provider,
		GeminiAPIKey:    ai.APIKey,
		GeminiModel:     ai.Model,
		OpenRouterKey:   or.APIKey,
		OpenRouterModel: or.Model,
		OpenRouterURL:   or.BaseURL,
		SiteURL:         or.SiteURL,
		AppTitle:        or.AppTitle,
		Timeout:         or.Timeout,
	}
}

// SelectProvider builds the configured generator and, when a Gemini key is
// present, the embedder. Either may be nil: a nil generator means offline.
func SelectProvider(ctx context.Context, opts ProviderOptions, log logger.Logger) (GenerativeService, EmbeddingService, error) {
	var (
		gen      GenerativeService
		embedder EmbeddingService
	)

	if opts.GeminiAPIKey != "" {
		gemini, err := NewGeminiService(ctx, opts.GeminiAPIKey, opts.GeminiModel, log)
		if err != nil {
			return nil, nil, err
		}
		embedder = gemini
		gen = gemini
	}

	switch strings.ToLower(opts.Provider) {
	case "", ProviderGemini:
	case ProviderOpenRouter:
		if opts.OpenRouterKey == "" {
			gen = nil
			break
		}
		baseURL := opts.OpenRouterURL
		if baseURL == "" {
			baseURL = openRouterBaseURL
		}
		gen = NewOpenRouterServiceWithBaseURL(baseURL, opts.OpenRouterKey, opts.OpenRouterModel, log).
			WithAttribution(opts.SiteURL, opts.AppTitle).
			WithTimeout(opts.Timeout)
	default:
		return nil, nil, fmt.Errorf("unknown AI_PROVIDER %q", opts.Provider)
	}

	if gen == nil {
		log.Warn("no generative credential for provider, running offline", logger.Fields{"provider": opts.Provider})
	}
	return gen, embedder, nil
}
