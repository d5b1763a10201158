package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/schema"
)

const openRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterService talks to an OpenAI-compatible chat completions endpoint.
type OpenRouterService struct {
	APIKey string
	Model  string
	client *resty.Client
	log    logger.Logger
}

func NewOpenRouterService(apiKey, model string, log logger.Logger) *OpenRouterService {
	return NewOpenRouterServiceWithBaseURL(openRouterBaseURL, apiKey, model, log)
}

func NewOpenRouterServiceWithBaseURL(baseURL, apiKey, model string, log logger.Logger) *OpenRouterService {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(90*time.Second).
		SetHeader("Content-Type", "application/json").
		SetAuthToken(apiKey)
	return &OpenRouterService{
		APIKey: apiKey,
		Model:  model,
		client: client,
		log:    log.With(logger.Fields{"provider": "openrouter"}),
	}
}

// WithAttribution sets the HTTP-Referer and X-Title headers. Empty values are skipped.
func (s *OpenRouterService) WithAttribution(siteURL, title string) *OpenRouterService {
	if siteURL != "" {
		s.client.SetHeader("HTTP-Referer", siteURL)
	}
	if title != "" {
		s.client.SetHeader("X-Title", title)
	}
	return s
}

func (s *OpenRouterService) WithTimeout(d time.Duration) *OpenRouterService {
	if d > 0 {
		s.client.SetTimeout(d)
	}
	return s
}

func (s *OpenRouterService) GenerateJSON(ctx context.Context, prompt string, shape schema.Shape) (string, error) {
	descriptor, err := json.MarshalIndent(shape.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode %s schema: %w", shape.Name, err)
	}
	full := fmt.Sprintf("%s\n\nReturn your answer STRICTLY as JSON matching this JSON Schema:\n%s", prompt, descriptor)
	return s.complete(ctx, full, "You are a career coach for freelancers. Reply with JSON only.")
}

func (s *OpenRouterService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.complete(ctx, prompt, "You are a career coach for freelancers.")
}

func (s *OpenRouterService) complete(ctx context.Context, prompt, system string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"model": s.Model,
			"messages": []map[string]string{
				{"role": "system", "content": system},
				{"role": "user", "content": prompt},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		msg := gjson.Get(resp.String(), "error.message").String()
		s.log.Warn("chat completion rejected", logger.Fields{
			"status":  resp.StatusCode(),
			"message": msg,
		})
		return "", fmt.Errorf("chat completion status %d: %s", resp.StatusCode(), msg)
	}

	text := gjson.Get(resp.String(), "choices.0.message.content")
	if !text.Exists() {
		return "", fmt.Errorf("no response from LLM")
	}
	return text.String(), nil
}
