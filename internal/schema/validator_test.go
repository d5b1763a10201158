package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/fairfound-coach/internal/model"
)

func validAnalysisDoc() map[string]interface{} {
	return map[string]interface{}{
		"globalReadinessScore": 70,
		"marketPercentile":     55.5,
		"projectedEarnings":    90000,
		"strengths":            []string{"React"},
		"weaknesses":           []string{"Testing"},
		"opportunities":        []string{"AI tooling"},
		"threats":              []string{},
		"skillGaps":            []string{"Go"},
		"pricingSuggestion": map[string]interface{}{
			"current":     80,
			"recommended": 95,
			"reasoning":   "market rate",
		},
		"metrics": map[string]interface{}{
			"portfolioScore":     50,
			"githubScore":        60,
			"communicationScore": 70,
			"techStackScore":     80,
		},
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func requireSchemaError(t *testing.T, err error) *SchemaError {
	t.Helper()
	require.Error(t, err)
	var se *SchemaError
	require.ErrorAs(t, err, &se)
	return se
}

func TestValidate_AnalysisAccepted(t *testing.T) {
	var out model.AnalysisResult
	err := Validate(mustJSON(t, validAnalysisDoc()), AnalysisShape, &out)
	require.NoError(t, err)

	assert.Equal(t, 70.0, out.GlobalReadinessScore)
	assert.Equal(t, 55.5, out.MarketPercentile)
	assert.Equal(t, []string{"Go"}, out.SkillGaps)
	assert.Equal(t, 95.0, out.PricingSuggestion.Recommended)
	assert.Equal(t, 80.0, out.Metrics.TechStackScore)
}

func TestValidate_AnalysisRejected(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(doc map[string]interface{})
		detail string
	}{
		{
			name:   "missing readiness score",
			mutate: func(doc map[string]interface{}) { delete(doc, "globalReadinessScore") },
			detail: "globalReadinessScore",
		},
		{
			name:   "negative percentile",
			mutate: func(doc map[string]interface{}) { doc["marketPercentile"] = -1 },
			detail: "marketPercentile",
		},
		{
			name: "metric above 100",
			mutate: func(doc map[string]interface{}) {
				doc["metrics"].(map[string]interface{})["githubScore"] = 101
			},
			detail: "githubScore",
		},
		{
			name:   "score as string",
			mutate: func(doc map[string]interface{}) { doc["globalReadinessScore"] = "78" },
			detail: "globalReadinessScore",
		},
		{
			name:   "skill gaps not a list",
			mutate: func(doc map[string]interface{}) { doc["skillGaps"] = "Go" },
			detail: "skillGaps",
		},
		{
			name: "missing nested reasoning",
			mutate: func(doc map[string]interface{}) {
				delete(doc["pricingSuggestion"].(map[string]interface{}), "reasoning")
			},
			detail: "reasoning",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validAnalysisDoc()
			tt.mutate(doc)

			var out model.AnalysisResult
			se := requireSchemaError(t, Validate(mustJSON(t, doc), AnalysisShape, &out))
			assert.Equal(t, "analysis", se.Shape)
			assert.Contains(t, se.Error(), tt.detail)
			assert.Zero(t, out.GlobalReadinessScore, "nothing is decoded on failure")
		})
	}
}

func TestValidate_RoadmapElementWise(t *testing.T) {
	step := func(id, status, typ string) map[string]interface{} {
		return map[string]interface{}{
			"id": id, "title": "t", "description": "d", "duration": "1 week",
			"status": status, "type": typ,
		}
	}

	t.Run("valid list", func(t *testing.T) {
		var out []model.RoadmapStep
		raw := mustJSON(t, []interface{}{step("a", "pending", "skill"), step("b", "in-progress", "branding")})
		require.NoError(t, Validate(raw, RoadmapShape, &out))
		assert.Len(t, out, 2)
		assert.Equal(t, model.StepInProgress, out[1].Status)
	})

	t.Run("empty list is valid", func(t *testing.T) {
		var out []model.RoadmapStep
		require.NoError(t, Validate([]byte(`[]`), RoadmapShape, &out))
		assert.Empty(t, out)
	})

	t.Run("enum is case sensitive", func(t *testing.T) {
		var out []model.RoadmapStep
		raw := mustJSON(t, []interface{}{step("a", "Pending", "skill")})
		requireSchemaError(t, Validate(raw, RoadmapShape, &out))
	})

	t.Run("one bad element fails the collection", func(t *testing.T) {
		var out []model.RoadmapStep
		raw := mustJSON(t, []interface{}{step("a", "pending", "skill"), step("b", "pending", "course")})
		requireSchemaError(t, Validate(raw, RoadmapShape, &out))
		assert.Empty(t, out)
	})

	t.Run("duplicate ids", func(t *testing.T) {
		var out []model.RoadmapStep
		raw := mustJSON(t, []interface{}{step("a", "pending", "skill"), step("a", "pending", "project")})
		se := requireSchemaError(t, Validate(raw, RoadmapShape, &out))
		assert.Contains(t, se.Error(), "duplicate id")
	})
}

func TestValidate_TaskFeedbackOptional(t *testing.T) {
	var out []model.Task
	raw := `[{"id":"1","title":"Read docs","description":"d","dueDate":"Nov 1","status":"pending"}]`
	require.NoError(t, Validate([]byte(raw), TaskListShape, &out))
	require.Len(t, out, 1)
	assert.Equal(t, model.TaskPending, out[0].Status)
	assert.Empty(t, out[0].Feedback)
}

func TestValidate_TaskStatusOptionalButChecked(t *testing.T) {
	var out []model.Task
	raw := `[{"id":"1","title":"Read docs","description":"d","dueDate":"Nov 1"}]`
	require.NoError(t, Validate([]byte(raw), TaskListShape, &out))
	require.Len(t, out, 1)
	assert.Empty(t, out[0].Status)

	raw = `[{"id":"1","title":"Read docs","description":"d","dueDate":"Nov 1","status":"done"}]`
	requireSchemaError(t, Validate([]byte(raw), TaskListShape, &out))
}

func TestValidate_MalformedPayload(t *testing.T) {
	var out model.PortfolioContent
	for _, raw := range []string{"", "   ", "not json", `{"tagline":`} {
		requireSchemaError(t, Validate([]byte(raw), PortfolioShape, &out))
	}
}

func TestValidate_StripsCodeFence(t *testing.T) {
	raw := "```json\n{\"tagline\":\"x\",\"about\":\"y\",\"projects\":[]}\n```"
	var out model.PortfolioContent
	require.NoError(t, Validate([]byte(raw), PortfolioShape, &out))
	assert.Equal(t, "x", out.Tagline)
}

func TestShape_JSONSchemaRequiredFields(t *testing.T) {
	doc := TaskListShape.JSONSchema()
	items := doc["items"].(map[string]interface{})
	required := items["required"].([]string)

	assert.Equal(t, "array", doc["type"])
	assert.Contains(t, required, "title")
	assert.NotContains(t, required, "status")
	assert.NotContains(t, required, "feedback")
}
