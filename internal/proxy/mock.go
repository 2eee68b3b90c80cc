package proxy

import (
	"context"
	"fmt"
	"sync"

	"github.com/jakoblorz/go-projectpage/internal/models"
)

// MockFetcher implements RawFetcher for testing
type MockFetcher struct {
	mu    sync.RWMutex
	raw   map[string][]byte // key: "org/name@ref"
	calls int

	// Hook for testing error scenarios
	FetchRawError error
}

// NewMockFetcher creates a new MockFetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{raw: make(map[string][]byte)}
}

// SetRaw registers the markup returned for a project
func (m *MockFetcher) SetRaw(p models.Project, markup string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.raw[p.FullName()+"@"+p.Ref] = []byte(markup)
}

func (m *MockFetcher) FetchRaw(ctx context.Context, p models.Project) ([]byte, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.FetchRawError != nil {
		return nil, m.FetchRawError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	raw, exists := m.raw[p.FullName()+"@"+p.Ref]
	if !exists {
		return nil, fmt.Errorf("%w: no raw readme for %s", ErrUnexpectedStatus, p.FullName())
	}
	return raw, nil
}

// CallCount returns how many times FetchRaw was invoked (helper for testing)
func (m *MockFetcher) CallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.calls
}
