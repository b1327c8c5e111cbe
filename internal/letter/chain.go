package letter

import (
	"context"
	"fmt"
	"log/slog"
)

// Generator produces a cover letter for a posting.
type Generator interface {
	CoverLetter(ctx context.Context, title, company, description string) (string, error)
}

// Chain tries each generator in order and returns the first letter
// produced. With the template generator last, the chain only fails when
// every generator does.
type Chain struct {
	generators []Generator
}

func NewChain(generators ...Generator) *Chain {
	return &Chain{generators: generators}
}

func (c *Chain) CoverLetter(ctx context.Context, title, company, description string) (string, error) {
	var lastErr error
	for _, g := range c.generators {
		out, err := g.CoverLetter(ctx, title, company, description)
		if err == nil {
			return out, nil
		}
		lastErr = err
		slog.Warn("cover letter generator failed, trying next", "error", err)
	}
	if lastErr == nil {
		return "", fmt.Errorf("no cover letter generators configured")
	}
	return "", fmt.Errorf("all cover letter generators failed: %w", lastErr)
}
