package llm

import (
	"context"
	"errors"
	"fmt"
)

// Summarizer produces prose for a single chunk of a document.
type Summarizer interface {
	// SummarizeChunk summarizes one window of document text. index is
	// 0-based; total is the number of chunks in the document.
	SummarizeChunk(ctx context.Context, text string, index, total int) (string, error)
	// Name identifies the provider in records and logs.
	Name() string
}

// Reflector produces a structured reflection of a full document.
type Reflector interface {
	Reflect(ctx context.Context, text string) (Reflection, error)
}

// Reflection is the structured secondary analysis of a document, distinct
// from the literal summary. The zero value is the degraded result used
// when the reflector fails.
type Reflection struct {
	SymbolicTerms []string `json:"symbolic_terms"`
	Emotions      []string `json:"emotions"`
	Structure     string   `json:"structure"`
	Meaning       string   `json:"meaning"`
}

// ErrTimeout marks a provider call that exceeded its deadline. Timeouts
// are treated like any other provider error: they trigger fallback.
var ErrTimeout = errors.New("llm: request timed out")

// APIError is a non-200 answer from a provider endpoint.
type APIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: API error %d: %s", e.Provider, e.StatusCode, e.Body)
}
