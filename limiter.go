package shopcrawl

import "context"

// DomainLimiter enforces a minimum spacing between successive
// requests to the same domain. Waits for different domains are
// independent.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the
	// domain. It may suspend the caller but only fails when the
	// context is canceled. Safe for concurrent use on the same
	// domain.
	Wait(ctx context.Context, domain Domain) error
}
