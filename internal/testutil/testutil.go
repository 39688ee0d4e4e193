package testutil

import (
	"context"
	"fmt"
	"sync"

	"inputfetcher/internal/fetcher"
)

// MockSource is a mock implementation of the Source interface for testing
type MockSource struct {
	GetFunc func(ctx context.Context, day int) (string, error)

	mu    sync.Mutex
	calls map[int]int
}

// Get implements the Source interface
func (m *MockSource) Get(ctx context.Context, day int) (string, error) {
	m.mu.Lock()
	if m.calls == nil {
		m.calls = make(map[int]int)
	}
	m.calls[day]++
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, day)
	}
	return fmt.Sprintf("input for day %d\n", day), nil
}

// Calls returns how many times Get was called for day
func (m *MockSource) Calls(day int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[day]
}

// NewMockSource creates a mock source that fails for the listed days and succeeds otherwise
func NewMockSource(failing map[int]error) *MockSource {
	return &MockSource{
		GetFunc: func(ctx context.Context, day int) (string, error) {
			if err, ok := failing[day]; ok {
				return "", err
			}
			return fmt.Sprintf("input for day %d\n", day), nil
		},
	}
}

var _ fetcher.Source = (*MockSource)(nil)
