package llm

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func testLog() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestChainUsesPrimaryOnSuccess(t *testing.T) {
	primary := &MockSummarizer{ProviderName: "gemini"}
	fallback := &MockSummarizer{ProviderName: "chatgpt"}
	primary.On("SummarizeChunk", mock.Anything, "chunk text", 0, 2).Return("primary answer", nil).Once()

	chain := NewChain(primary, fallback, testLog())
	rec := chain.Summarize(context.Background(), "chunk text", 0, 2)

	assert.Equal(t, "primary answer", rec.Text)
	assert.Equal(t, "gemini", rec.Provider)
	assert.Equal(t, 0, rec.ChunkIndex)
	primary.AssertExpectations(t)
	fallback.AssertNotCalled(t, "SummarizeChunk", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestChainFallsBackOnPrimaryError(t *testing.T) {
	primary := &MockSummarizer{ProviderName: "gemini"}
	fallback := &MockSummarizer{ProviderName: "chatgpt"}
	primary.On("SummarizeChunk", mock.Anything, "chunk text", 1, 3).
		Return("", &APIError{Provider: "gemini", StatusCode: 500}).Once()
	fallback.On("SummarizeChunk", mock.Anything, "chunk text", 1, 3).
		Return("fallback answer", nil).Once()

	chain := NewChain(primary, fallback, testLog())
	rec := chain.Summarize(context.Background(), "chunk text", 1, 3)

	assert.Equal(t, "fallback answer", rec.Text)
	assert.Equal(t, "chatgpt", rec.Provider)
	primary.AssertExpectations(t)
	fallback.AssertExpectations(t)
}

func TestChainFallsBackOnTimeout(t *testing.T) {
	primary := &MockSummarizer{ProviderName: "gemini"}
	fallback := &MockSummarizer{ProviderName: "chatgpt"}
	primary.On("SummarizeChunk", mock.Anything, mock.Anything, 0, 1).Return("", ErrTimeout).Once()
	// The fallback answer is kept verbatim even when it looks like an
	// error string; there is no second level of fallback.
	fallback.On("SummarizeChunk", mock.Anything, mock.Anything, 0, 1).
		Return("Error: model not loaded", nil).Once()

	chain := NewChain(primary, fallback, testLog())
	rec := chain.Summarize(context.Background(), "text", 0, 1)

	assert.Equal(t, "Error: model not loaded", rec.Text)
	assert.Equal(t, "chatgpt", rec.Provider)
}

func TestChainEmbedsErrorWhenBothFail(t *testing.T) {
	primary := &MockSummarizer{ProviderName: "gemini"}
	fallback := &MockSummarizer{ProviderName: "chatgpt"}
	primary.On("SummarizeChunk", mock.Anything, mock.Anything, 0, 1).Return("", ErrTimeout).Once()
	fallback.On("SummarizeChunk", mock.Anything, mock.Anything, 0, 1).
		Return("", &APIError{Provider: "chatgpt", StatusCode: 503, Body: "overloaded"}).Once()

	chain := NewChain(primary, fallback, testLog())
	rec := chain.Summarize(context.Background(), "text", 0, 1)

	assert.Contains(t, rec.Text, "[ERROR:")
	assert.Contains(t, rec.Text, "overloaded")
	assert.Equal(t, "chatgpt", rec.Provider)
}
