package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"github.com/fadilmartias/fairfound-coach/internal/schema"
)

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", fmt.Errorf("call: %w", context.Canceled), false},
		{"deadline", context.DeadlineExceeded, false},
		{"rate limited", &genai.APIError{Code: 429}, true},
		{"server error", fmt.Errorf("wrap: %w", &genai.APIError{Code: 503}), true},
		{"bad request", &genai.APIError{Code: 400}, false},
		{"connection reset", errors.New("read tcp: connection reset by peer"), true},
		{"other", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestToGenaiSchema_Analysis(t *testing.T) {
	out := toGenaiSchema(schema.AnalysisShape.Root)

	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Contains(t, out.Required, "globalReadinessScore")
	assert.Equal(t, "globalReadinessScore", out.PropertyOrdering[0])

	score := out.Properties["globalReadinessScore"]
	if assert.NotNil(t, score.Minimum) && assert.NotNil(t, score.Maximum) {
		assert.Equal(t, 0.0, *score.Minimum)
		assert.Equal(t, 100.0, *score.Maximum)
	}
	assert.Equal(t, genai.TypeArray, out.Properties["skillGaps"].Type)
	assert.Equal(t, genai.TypeNumber, out.Properties["metrics"].Properties["githubScore"].Type)
}

func TestToGenaiSchema_RoadmapEnums(t *testing.T) {
	out := toGenaiSchema(schema.RoadmapShape.Root)

	assert.Equal(t, genai.TypeArray, out.Type)
	assert.Equal(t, []string{"pending", "in-progress", "completed"}, out.Items.Properties["status"].Enum)
	assert.Equal(t, []string{"skill", "project", "branding"}, out.Items.Properties["type"].Enum)
}

func TestValidateGenerateResponse(t *testing.T) {
	assert.Error(t, validateGenerateResponse(nil))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{}))
	assert.Error(t, validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))
	assert.NoError(t, validateGenerateResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: genai.NewContentFromText("ok", genai.RoleModel)}},
	}))
}
