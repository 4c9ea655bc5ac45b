package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiAnswer(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *Gemini {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGemini(GeminiOptions{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	require.NoError(t, err)
	return g
}

func TestGeminiSummarizeChunk(t *testing.T) {
	var gotPath string
	var gotBody geminiRequest
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geminiAnswer("the summary"))
	})

	out, err := g.SummarizeChunk(context.Background(), "section text", 0, 2)
	require.NoError(t, err)
	assert.Equal(t, "the summary", out)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	require.Len(t, gotBody.Contents, 1)
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "section 1 of 2")
	assert.Contains(t, gotBody.Contents[0].Parts[0].Text, "section text")
}

func TestGeminiNon200IsAPIError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})

	_, err := g.SummarizeChunk(context.Background(), "text", 0, 1)
	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, "gemini", apiErr.Provider)
}

func TestGeminiReflectParsesJSON(t *testing.T) {
	reflection := `{"symbolic_terms":["engine","torque"],"emotions":["caution"],"structure":"procedural steps","meaning":"maintenance guidance"}`
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiAnswer(reflection))
	})

	r, err := g.Reflect(context.Background(), "document text")
	require.NoError(t, err)
	assert.Equal(t, []string{"engine", "torque"}, r.SymbolicTerms)
	assert.Equal(t, []string{"caution"}, r.Emotions)
	assert.Equal(t, "procedural steps", r.Structure)
	assert.Equal(t, "maintenance guidance", r.Meaning)
}

func TestGeminiReflectStripsCodeFences(t *testing.T) {
	fenced := "```json\n{\"symbolic_terms\":[],\"emotions\":[],\"structure\":\"flat\",\"meaning\":\"none\"}\n```"
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiAnswer(fenced))
	})

	r, err := g.Reflect(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "flat", r.Structure)
}

func TestGeminiReflectRejectsProse(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(geminiAnswer("Here is my reflection on the document..."))
	})

	_, err := g.Reflect(context.Background(), "text")
	assert.Error(t, err)
}

func TestGeminiRequiresAPIKey(t *testing.T) {
	_, err := NewGemini(GeminiOptions{})
	assert.Error(t, err)
}
