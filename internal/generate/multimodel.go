package generate

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/tokamak-network/reportgen/internal/llm"
)

// ClientFactory builds a provider client for one model name.
type ClientFactory func(model string) (llm.Client, error)

// MultiModel sends the same prompt to each model independently and collects
// the raw outputs in a model→text map. There is no voting or interaction;
// this is pure parallel fan-out for side-by-side comparison.
func MultiModel(ctx context.Context, factory ClientFactory, models []string, prompt string) (map[string]string, []string) {
	var mu sync.Mutex
	results := make(map[string]string, len(models))
	var diags []string

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(len(models))
	for _, model := range models {
		model := model
		eg.Go(func() error {
			client, err := factory(model)
			if err != nil {
				mu.Lock()
				diags = append(diags, fmt.Sprintf("%s: %v", model, err))
				mu.Unlock()
				return nil
			}
			defer client.Close()
			text, err := client.Complete(egCtx, prompt)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				diags = append(diags, fmt.Sprintf("%s: %v", model, err))
				return nil
			}
			results[model] = text
			return nil
		})
	}
	_ = eg.Wait()
	return results, diags
}
