package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopcrawl/shopcrawl"
)

// Ensure LoggingEnricher implements shopcrawl.Enricher.
var _ shopcrawl.Enricher = (*LoggingEnricher)(nil)

// LoggingEnricher wraps an Enricher and logs swallowed failures.
// Enrichment errors never abort a crawl, so this decorator is the
// only place they become visible.
type LoggingEnricher struct {
	next   shopcrawl.Enricher
	logger *slog.Logger
}

// NewLoggingEnricher creates a new LoggingEnricher.
func NewLoggingEnricher(next shopcrawl.Enricher, logger *slog.Logger) *LoggingEnricher {
	return &LoggingEnricher{next: next, logger: logger}
}

// Enrich delegates to the wrapped enricher and logs the outcome.
func (e *LoggingEnricher) Enrich(ctx context.Context, productURL string, domain shopcrawl.Domain) (urls []string, err error) {
	defer func(begin time.Time) {
		if err != nil {
			e.logger.Warn("enrichment failure (ignored)",
				"url", productURL,
				"found", len(urls),
				"duration", time.Since(begin),
				"err", shopcrawl.ErrorMessage(err),
			)
			return
		}
		if len(urls) > 0 {
			e.logger.Info("enrichment",
				"url", productURL,
				"found", len(urls),
				"duration", time.Since(begin),
			)
		}
	}(time.Now())
	return e.next.Enrich(ctx, productURL, domain)
}
