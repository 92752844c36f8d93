package slog

import (
	"log/slog"

	"github.com/shopcrawl/shopcrawl"
)

// Ensure LoggingClassifier implements shopcrawl.ProductClassifier.
var _ shopcrawl.ProductClassifier = (*LoggingClassifier)(nil)

// LoggingClassifier wraps a ProductClassifier and logs newly learned
// patterns.
type LoggingClassifier struct {
	next   shopcrawl.ProductClassifier
	logger *slog.Logger
}

// NewLoggingClassifier creates a new LoggingClassifier.
func NewLoggingClassifier(next shopcrawl.ProductClassifier, logger *slog.Logger) *LoggingClassifier {
	return &LoggingClassifier{next: next, logger: logger}
}

// Classify delegates to the wrapped classifier and logs any pattern
// the call learned.
func (c *LoggingClassifier) Classify(url string, html string) bool {
	domain, derr := shopcrawl.Origin(url)
	var before int
	if derr == nil {
		before = len(c.next.LearnedPatterns(domain))
	}

	product := c.next.Classify(url, html)

	if derr == nil {
		patterns := c.next.LearnedPatterns(domain)
		for _, pattern := range patterns[before:] {
			c.logger.Info("discovered product pattern",
				"domain", domain,
				"pattern", pattern,
			)
		}
	}
	if product {
		c.logger.Debug("classified as product", "url", url)
	}
	return product
}

// LearnedPatterns delegates to the wrapped classifier.
func (c *LoggingClassifier) LearnedPatterns(domain shopcrawl.Domain) []string {
	return c.next.LearnedPatterns(domain)
}
