package mock

import (
	"context"

	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of shopcrawl.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, productURL string, domain shopcrawl.Domain) ([]string, error)
}

func (e *Enricher) Enrich(ctx context.Context, productURL string, domain shopcrawl.Domain) ([]string, error) {
	return e.EnrichFn(ctx, productURL, domain)
}
