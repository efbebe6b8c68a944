package llm

import (
	"context"
	"fmt"
	"log"
	"strings"
)

// Chain tries each client in order until one produces text. Provider failures
// are not errors to the caller: they are collected as diagnostics and the
// chain simply reports no output, which triggers the heuristic fallback.
type Chain struct {
	clients []Client
}

func NewChain(clients ...Client) *Chain {
	kept := make([]Client, 0, len(clients))
	for _, c := range clients {
		if c != nil {
			kept = append(kept, c)
		}
	}
	return &Chain{clients: kept}
}

// Available reports whether any provider is configured.
func (c *Chain) Available() bool { return len(c.clients) > 0 }

// Complete returns the first successful completion and the diagnostics
// gathered from providers that failed before it. When all providers fail the
// text is empty and diags holds one entry per attempt.
func (c *Chain) Complete(ctx context.Context, prompt string) (text string, diags []string) {
	for _, client := range c.clients {
		out, err := client.Complete(ctx, prompt)
		if err != nil {
			diags = append(diags, fmt.Sprintf("%s: %v", client.Name(), err))
			continue
		}
		if strings.TrimSpace(out) == "" {
			diags = append(diags, fmt.Sprintf("%s: empty response", client.Name()))
			continue
		}
		return out, diags
	}
	if len(c.clients) > 0 {
		log.Printf("all providers failed: %s", strings.Join(diags, "; "))
	}
	return "", diags
}

// Close closes every client; the first error wins.
func (c *Chain) Close() error {
	var first error
	for _, client := range c.clients {
		if err := client.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
