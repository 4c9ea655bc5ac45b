package extract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockExtractor is a mock implementation of Extractor using testify/mock.
type MockExtractor struct {
	mock.Mock
}

func (m *MockExtractor) Extract(ctx context.Context, path string) (Document, error) {
	args := m.Called(ctx, path)
	return args.Get(0).(Document), args.Error(1)
}
