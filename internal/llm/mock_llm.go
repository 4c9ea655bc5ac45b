package llm

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockSummarizer is a mock implementation of Summarizer using testify/mock.
type MockSummarizer struct {
	mock.Mock
	ProviderName string
}

func (m *MockSummarizer) SummarizeChunk(ctx context.Context, text string, index, total int) (string, error) {
	args := m.Called(ctx, text, index, total)
	return args.String(0), args.Error(1)
}

func (m *MockSummarizer) Name() string {
	if m.ProviderName != "" {
		return m.ProviderName
	}
	return "mock"
}

// MockReflector is a mock implementation of Reflector using testify/mock.
type MockReflector struct {
	mock.Mock
}

func (m *MockReflector) Reflect(ctx context.Context, text string) (Reflection, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(Reflection), args.Error(1)
}
