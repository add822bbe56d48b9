package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-insights-go/internal/logger"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	c := New(Config{APIKey: "test-key", Endpoint: ts.URL}, logger.New())
	require.NotNil(t, c)
	return c
}

func respond(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestAnalyzeNotConfigured(t *testing.T) {
	t.Parallel()

	c := New(Config{}, logger.New())
	require.Nil(t, c)

	_, err := c.Analyze(context.Background(), "q", "ctx")
	var aiErr *Error
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, KindNotConfigured, aiErr.Kind)
}

func TestAnalyzeFirstCandidateText(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Contents, 1)
		gotPrompt = req.Contents[0].Parts[0].Text
		assert.Equal(t, defaultMaxOutputTokens, req.GenerationConfig.MaxOutputTokens)

		respond(t, w, map[string]any{
			"candidates": []map[string]any{
				{
					"content":      map[string]any{"parts": []map[string]string{{"text": "first answer"}}},
					"finishReason": "STOP",
				},
				{
					"content": map[string]any{"parts": []map[string]string{{"text": "second answer"}}},
				},
			},
		})
	})

	answer, err := c.Analyze(context.Background(), "How is morale?", "Total Employees: 3")
	require.NoError(t, err)
	assert.Equal(t, "first answer", answer)
	assert.Contains(t, gotPrompt, "Context:\nTotal Employees: 3")
	assert.Contains(t, gotPrompt, "Question: How is morale?")
	assert.Contains(t, gotPrompt, "Provide a detailed analysis.")
}

func TestAnalyzeNoCandidates(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, map[string]any{"candidates": []any{}})
	})

	_, err := c.Analyze(context.Background(), "q", "ctx")
	var aiErr *Error
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, KindNoCandidates, aiErr.Kind)
}

func TestAnalyzeFilteredCandidate(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		respond(t, w, map[string]any{
			"candidates": []map[string]any{
				{"finishReason": "SAFETY"},
			},
		})
	})

	_, err := c.Analyze(context.Background(), "q", "ctx")
	var aiErr *Error
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, KindContentFiltered, aiErr.Kind)
	assert.Contains(t, aiErr.Detail, "finish_reason=SAFETY")
}

func TestAnalyzeServiceError(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		respond(t, w, map[string]any{
			"error": map[string]any{"code": 500, "message": "backend overloaded"},
		})
	})

	_, err := c.Analyze(context.Background(), "q", "ctx")
	var aiErr *Error
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, KindUnavailable, aiErr.Kind)
	assert.Contains(t, aiErr.Detail, "backend overloaded")
}

func TestAnalyzeTimeout(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Analyze(ctx, "q", "ctx")
	var aiErr *Error
	require.ErrorAs(t, err, &aiErr)
	assert.Equal(t, KindTimeout, aiErr.Kind)
}
