package llm

import (
	"context"
	"sync"
)

// FakeClient returns canned responses for offline use and tests.
type FakeClient struct {
	ClientName string
	Response   string
	Err        error

	mu      sync.Mutex
	prompts []string
}

func (f *FakeClient) Name() string {
	if f.ClientName != "" {
		return f.ClientName
	}
	return "FakeLLM"
}

func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) Complete(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()
	if f.Err != nil {
		return "", f.Err
	}
	return f.Response, nil
}

// Prompts returns a copy of every prompt seen so far.
func (f *FakeClient) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.prompts))
	copy(out, f.prompts)
	return out
}

// Calls returns how many completions were requested.
func (f *FakeClient) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}
