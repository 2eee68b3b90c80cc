package github

import (
	"context"
	"fmt"
	"sync"
)

// MockClient implements ReadmeClient for testing
type MockClient struct {
	mu      sync.RWMutex
	readmes map[string]string // key: "owner/repo@ref"
	calls   []string

	// Hook for testing error scenarios
	GetRenderedReadmeError error
}

// NewMockClient creates a new MockClient
func NewMockClient() *MockClient {
	return &MockClient{
		readmes: make(map[string]string),
	}
}

func readmeKey(owner, repo, ref string) string {
	return fmt.Sprintf("%s/%s@%s", owner, repo, ref)
}

// SetReadme registers the rendered README returned for owner/repo@ref
func (m *MockClient) SetReadme(owner, repo, ref, html string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.readmes[readmeKey(owner, repo, ref)] = html
}

func (m *MockClient) GetRenderedReadme(ctx context.Context, owner, repo, ref string) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, readmeKey(owner, repo, ref))
	m.mu.Unlock()

	if m.GetRenderedReadmeError != nil {
		return "", m.GetRenderedReadmeError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	html, exists := m.readmes[readmeKey(owner, repo, ref)]
	if !exists {
		return "", fmt.Errorf("failed to get readme of %s/%s@%s: %w", owner, repo, ref, ErrReadmeNotFound)
	}
	return html, nil
}

// Calls returns every "owner/repo@ref" requested so far (helper for testing)
func (m *MockClient) Calls() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}
