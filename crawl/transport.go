package crawl

import (
	"context"
	"errors"

	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.Fetcher = (*TransportSelector)(nil)

// TransportSelector routes fetches to one of two transports by the
// target URL's domain: sites flagged for anti-bot evasion in the
// config table use the browser-impersonating transport, everything
// else uses the plain HTTP client.
type TransportSelector struct {
	// Plain is the standard HTTP transport. Required.
	Plain shopcrawl.Fetcher

	// Impersonating is the browser-impersonating transport. When
	// nil, flagged sites fall back to Plain.
	Impersonating shopcrawl.Fetcher

	// Configs is the per-site configuration table.
	Configs shopcrawl.SiteConfigTable
}

// Fetch delegates to the transport selected for the URL's domain.
func (t *TransportSelector) Fetch(ctx context.Context, url string) (string, error) {
	domain, err := shopcrawl.Origin(url)
	if err != nil {
		return "", err
	}
	if cfg := t.Configs.Lookup(domain); cfg != nil && cfg.Impersonate && t.Impersonating != nil {
		return t.Impersonating.Fetch(ctx, url)
	}
	return t.Plain.Fetch(ctx, url)
}

// Close releases both transports.
func (t *TransportSelector) Close() error {
	var errs []error
	if t.Plain != nil {
		errs = append(errs, t.Plain.Close())
	}
	if t.Impersonating != nil {
		errs = append(errs, t.Impersonating.Close())
	}
	return errors.Join(errs...)
}
