// Package llm provides chat-completion clients for the report generator: an
// OpenAI-compatible primary, a Gemini fallback, and a chain that tries them
// in order while accumulating diagnostics.
package llm

import (
	"context"
	"errors"
)

var (
	// ErrEmptyResponse marks a provider call that returned no usable text.
	ErrEmptyResponse = errors.New("llm: empty response from model")
)

// Client is a chat-completion provider.
type Client interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Close() error
}
