package api

import (
	"context"
	"sync"
)

// MockClient is a Completer for tests
type MockClient struct {
	// Response is returned when Responses is exhausted
	Response string
	// Responses are returned in order, one per call
	Responses []string
	// Err is returned instead of a response when set
	Err error
	// CompleteFunc overrides everything above when set
	CompleteFunc func(ctx context.Context, prompt string) (string, error)

	mu    sync.Mutex
	calls []string
}

// Ensure MockClient implements Completer
var _ Completer = (*MockClient)(nil)

func (m *MockClient) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	n := len(m.calls)
	m.calls = append(m.calls, prompt)
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt)
	}
	if m.Err != nil {
		return "", m.Err
	}
	if n < len(m.Responses) {
		return m.Responses[n], nil
	}
	return m.Response, nil
}

// Calls returns the prompts received so far
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// LastPrompt returns the most recent prompt, or ""
func (m *MockClient) LastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return ""
	}
	return m.calls[len(m.calls)-1]
}
