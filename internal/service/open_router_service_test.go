package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/fadilmartias/fairfound-coach/internal/schema"
)

func completion(content string) string {
	body, _ := json.Marshal(map[string]interface{}{
		"choices": []interface{}{
			map[string]interface{}{"message": map[string]string{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestOpenRouterService_GenerateJSON(t *testing.T) {
	var captured map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion(`{"tagline":"t","about":"a","projects":[]}`)))
	}))
	defer server.Close()

	svc := NewOpenRouterServiceWithBaseURL(server.URL, "secret", "test-model", logger.NewTest(t))
	out, err := svc.GenerateJSON(context.Background(), "build my portfolio", schema.PortfolioShape)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tagline":"t","about":"a","projects":[]}`, out)

	assert.Equal(t, "test-model", captured["model"])
	messages := captured["messages"].([]interface{})
	require.Len(t, messages, 2)
	user := messages[1].(map[string]interface{})
	assert.Contains(t, user["content"], "build my portfolio")
	assert.Contains(t, user["content"], `"tagline"`)
}

func TestOpenRouterService_GenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completion("Dear Acme, ...")))
	}))
	defer server.Close()

	svc := NewOpenRouterServiceWithBaseURL(server.URL, "secret", "m", logger.NewNop())
	out, err := svc.GenerateText(context.Background(), "write a proposal")
	require.NoError(t, err)
	assert.Equal(t, "Dear Acme, ...", out)
}

func TestOpenRouterService_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"upstream error status", http.StatusServiceUnavailable, `{"error":{"message":"overloaded"}}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			svc := NewOpenRouterServiceWithBaseURL(server.URL, "secret", "m", logger.NewNop())
			_, err := svc.GenerateText(context.Background(), "hello")
			assert.Error(t, err)
		})
	}

	t.Run("empty prompt", func(t *testing.T) {
		svc := NewOpenRouterServiceWithBaseURL("http://127.0.0.1:1", "secret", "m", logger.NewNop())
		_, err := svc.GenerateText(context.Background(), "  ")
		assert.Error(t, err)
	})
}
