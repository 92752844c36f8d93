package shopcrawl

import "context"

// Enricher expands discovery beyond link-following through a site's
// structured product API.
type Enricher interface {
	// Enrich converts a classified product URL into zero or more API
	// calls and returns any product URLs they surface. Enrichment is
	// best effort: a non-nil error reports the first failure for
	// logging, but any URLs gathered before it are still returned
	// and the caller must never abort the crawl over it. Domains
	// without enrichment configuration return (nil, nil).
	Enrich(ctx context.Context, productURL string, domain Domain) ([]string, error)
}
