package scorer

import (
	"context"
	"sync"
)

type MockLLMClient struct {
	mu         sync.Mutex
	Response   string
	Err        error
	LastPrompt string
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
