package crawl

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopcrawl/shopcrawl"
	"golang.org/x/time/rate"
)

var _ shopcrawl.DomainLimiter = (*DomainLimiter)(nil)

// DefaultJitterMax bounds the random delay added after each rate
// limit wait. Jitter avoids synchronized request bursts across
// concurrently scheduled fetches.
const DefaultJitterMax = 500 * time.Millisecond

// DomainLimiter provides per-domain rate limiting using token
// buckets with a burst of 1, so successive requests to one domain
// are spaced by at least the domain's minimum delay. Requests to
// different domains never wait on each other.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[shopcrawl.Domain]*rate.Limiter

	delay     time.Duration
	configs   shopcrawl.SiteConfigTable
	jitterMax time.Duration
}

// LimiterOption configures a DomainLimiter.
type LimiterOption func(*DomainLimiter)

// WithSiteConfigs supplies per-site delay overrides.
func WithSiteConfigs(configs shopcrawl.SiteConfigTable) LimiterOption {
	return func(d *DomainLimiter) {
		d.configs = configs
	}
}

// WithJitterMax sets the upper bound of the random extra delay.
// Zero disables jitter.
func WithJitterMax(max time.Duration) LimiterOption {
	return func(d *DomainLimiter) {
		d.jitterMax = max
	}
}

// NewDomainLimiter creates a DomainLimiter with the given default
// minimum delay between requests to the same domain.
func NewDomainLimiter(delay time.Duration, opts ...LimiterOption) *DomainLimiter {
	d := &DomainLimiter{
		limiters:  make(map[shopcrawl.Domain]*rate.Limiter),
		delay:     delay,
		jitterMax: DefaultJitterMax,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Wait blocks until the rate limit allows a request to the domain,
// then sleeps a uniform random jitter. Returns an error only if the
// context is canceled before the wait completes.
func (d *DomainLimiter) Wait(ctx context.Context, domain shopcrawl.Domain) error {
	d.mu.Lock()
	limiter, ok := d.limiters[domain]
	if !ok {
		limiter = rate.NewLimiter(rate.Every(d.delayFor(domain)), 1)
		d.limiters[domain] = limiter
	}
	d.mu.Unlock()

	if err := limiter.Wait(ctx); err != nil {
		return err
	}

	if d.jitterMax > 0 {
		jitter := time.Duration(rand.Int63n(int64(d.jitterMax)))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(jitter):
		}
	}
	return nil
}

// delayFor resolves the per-site delay override, falling back to the
// global default.
func (d *DomainLimiter) delayFor(domain shopcrawl.Domain) time.Duration {
	if cfg := d.configs.Lookup(domain); cfg != nil && cfg.RequestDelay > 0 {
		return cfg.RequestDelay
	}
	if d.delay <= 0 {
		return time.Millisecond
	}
	return d.delay
}
