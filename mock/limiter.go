package mock

import (
	"context"

	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of shopcrawl.DomainLimiter.
// A nil WaitFn never waits.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain shopcrawl.Domain) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain shopcrawl.Domain) error {
	if l.WaitFn == nil {
		return nil
	}
	return l.WaitFn(ctx, domain)
}
