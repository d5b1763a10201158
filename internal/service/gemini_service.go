package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/schema"
)

// GenerativeService is one outbound capability able to answer a prompt with
// either shape-constrained JSON or free text. Implementations make exactly
// one upstream call per invocation.
type GenerativeService interface {
	GenerateJSON(ctx context.Context, prompt string, shape schema.Shape) (string, error)
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

const (
	DefaultModel          = "gemini-2.5-flash"
	DefaultEmbeddingModel = "gemini-embedding-001"
)

type GeminiService struct {
	Client         *genai.Client
	Model          string
	EmbeddingModel string
	RequestTimeout time.Duration
	log            logger.Logger
}

func NewGeminiService(ctx context.Context, apiKey, model string, log logger.Logger) (*GeminiService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiService{
		Client:         client,
		Model:          model,
		EmbeddingModel: DefaultEmbeddingModel,
		RequestTimeout: 90 * time.Second,
		log:            log.With(logger.Fields{"provider": "gemini"}),
	}, nil
}

func (s *GeminiService) GenerateJSON(ctx context.Context, prompt string, shape schema.Shape) (string, error) {
	return s.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(float32(0.2)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenaiSchema(shape.Root),
	})
}

func (s *GeminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	return s.generate(ctx, prompt, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(float32(0.7)),
	})
}

func (s *GeminiService) generate(ctx context.Context, prompt string, genConfig *genai.GenerateContentConfig) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	start := time.Now()
	result, err := s.Client.Models.GenerateContent(timeoutCtx, s.Model, genai.Text(prompt), genConfig)
	if err != nil {
		s.log.Warn("generate content failed", logger.Fields{
			"model":     s.Model,
			"retryable": IsRetryable(err),
			"error":     err.Error(),
		})
		return "", fmt.Errorf("generate content failed: %w", err)
	}
	if err := validateGenerateResponse(result); err != nil {
		return "", fmt.Errorf("invalid response: %w", err)
	}

	s.log.Debug("generate content completed", logger.Fields{
		"model":    s.Model,
		"duration": time.Since(start).String(),
	})
	return result.Text(), nil
}

func (s *GeminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	trimmedText := strings.TrimSpace(text)
	if trimmedText == "" {
		return nil, fmt.Errorf("text for embedding cannot be empty")
	}

	if len(trimmedText) > 10000 {
		s.log.Warn("embedding text truncated", logger.Fields{"length": len(trimmedText)})
		trimmedText = trimmedText[:10000]
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.RequestTimeout)
	defer cancel()

	content := []*genai.Content{genai.NewContentFromText(trimmedText, genai.RoleUser)}
	result, err := s.Client.Models.EmbedContent(timeoutCtx, s.EmbeddingModel, content, nil)
	if err != nil {
		return nil, fmt.Errorf("generate embedding failed: %w", err)
	}
	return validateEmbeddingResponse(result)
}

// IsRetryable reports whether a caller could reasonably try the same request
// again. The services themselves never retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *genai.APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.Code)
	}

	errMsg := err.Error()
	return strings.Contains(errMsg, "connection refused") ||
		strings.Contains(errMsg, "connection reset") ||
		strings.Contains(errMsg, "timeout") ||
		strings.Contains(errMsg, "temporary failure") ||
		strings.Contains(errMsg, "EOF")
}

func retryableStatus(code int) bool {
	switch code {
	case 429, 500, 502, 503, 504:
		return true
	}
	return false
}

func validateGenerateResponse(resp *genai.GenerateContentResponse) error {
	if resp == nil {
		return fmt.Errorf("response is nil")
	}
	if len(resp.Candidates) == 0 {
		return fmt.Errorf("no candidates in response")
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("candidate content is nil")
	}
	if len(resp.Candidates[0].Content.Parts) == 0 {
		return fmt.Errorf("no parts in content")
	}
	return nil
}

func validateEmbeddingResponse(resp *genai.EmbedContentResponse) ([]float32, error) {
	if resp == nil {
		return nil, fmt.Errorf("response is nil")
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("no embeddings returned")
	}

	embeddings := resp.Embeddings[0].Values
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("embedding vector is empty")
	}
	for i, val := range embeddings {
		if math.IsNaN(float64(val)) || math.IsInf(float64(val), 0) {
			return nil, fmt.Errorf("invalid embedding value at index %d: %v", i, val)
		}
	}
	return embeddings, nil
}

func toGenaiSchema(f schema.Field) *genai.Schema {
	out := &genai.Schema{Description: f.Description}
	switch f.Kind {
	case schema.KindNumber:
		out.Type = genai.TypeNumber
		out.Minimum = f.Min
		out.Maximum = f.Max
	case schema.KindString:
		out.Type = genai.TypeString
	case schema.KindStringList:
		out.Type = genai.TypeArray
		out.Items = &genai.Schema{Type: genai.TypeString}
	case schema.KindEnum:
		out.Type = genai.TypeString
		out.Enum = f.Enum
	case schema.KindObject:
		objectToGenai(out, f.Fields)
	case schema.KindObjectList:
		item := &genai.Schema{}
		objectToGenai(item, f.Fields)
		out.Type = genai.TypeArray
		out.Items = item
	}
	return out
}

func objectToGenai(out *genai.Schema, fields []schema.Field) {
	out.Type = genai.TypeObject
	out.Properties = make(map[string]*genai.Schema, len(fields))
	for _, child := range fields {
		out.Properties[child.Name] = toGenaiSchema(child)
		out.PropertyOrdering = append(out.PropertyOrdering, child.Name)
		if !child.Optional {
			out.Required = append(out.Required, child.Name)
		}
	}
}
