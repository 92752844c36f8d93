// Package crawl provides the product-discovery crawl engine: the
// per-domain frontier and breadth-first fetch loop, the two-stage
// product classifier, per-domain rate limiting, transport selection,
// and the orchestrator that runs every configured domain in
// parallel.
package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/shopcrawl/shopcrawl"
	"golang.org/x/sync/errgroup"
)

// Crawler runs one crawl Engine per configured domain, all in
// parallel, and assembles the final result. Domains share no mutable
// state; each gets its own frontier, visited set, and budget, so one
// domain's failures or throttling never affect another's progress.
type Crawler struct {
	Fetcher    shopcrawl.Fetcher
	Limiter    shopcrawl.DomainLimiter
	Extractor  shopcrawl.LinkExtractor
	Classifier shopcrawl.ProductClassifier

	// Enricher is optional; nil disables API enrichment.
	Enricher shopcrawl.Enricher

	// Configs is the per-site configuration table. May be nil.
	Configs shopcrawl.SiteConfigTable

	// Budget caps fetch attempts per domain. Zero means
	// DefaultBudget.
	Budget int

	// Concurrency caps in-flight fetches per domain. Zero means
	// DefaultConcurrency.
	Concurrency int

	// PauseMin, PauseMax, and RateLimitBackoff tune engine pacing;
	// see Engine.
	PauseMin         time.Duration
	PauseMax         time.Duration
	RateLimitBackoff time.Duration

	// Progress, if set, receives events from all domains' engines.
	Progress shopcrawl.ProgressFunc
}

// Crawl crawls all domains concurrently and returns the aggregated
// product URLs and visited counts. On cancellation the result holds
// whatever was discovered before the crawl stopped.
func (c *Crawler) Crawl(ctx context.Context, domains []shopcrawl.Domain) (*shopcrawl.CrawlResult, error) {
	if c.Fetcher == nil || c.Limiter == nil || c.Extractor == nil || c.Classifier == nil {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "crawler requires fetcher, limiter, extractor, and classifier")
	}
	if len(domains) == 0 {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "at least one domain required")
	}

	result := &shopcrawl.CrawlResult{
		ProductURLs: make(map[shopcrawl.Domain][]string, len(domains)),
		Visited:     make(map[shopcrawl.Domain]int, len(domains)),
	}
	var mu sync.Mutex

	g := errgroup.Group{}
	for _, domain := range domains {
		g.Go(func() error {
			engine := &Engine{
				Domain:           domain,
				Fetcher:          c.Fetcher,
				Limiter:          c.Limiter,
				Extractor:        c.Extractor,
				Classifier:       c.Classifier,
				Enricher:         c.Enricher,
				Configs:          c.Configs,
				Budget:           c.Budget,
				Concurrency:      c.Concurrency,
				PauseMin:         c.PauseMin,
				PauseMax:         c.PauseMax,
				RateLimitBackoff: c.RateLimitBackoff,
				Progress:         c.Progress,
			}
			dr, err := engine.Run(ctx)
			if err != nil {
				return err
			}
			mu.Lock()
			result.ProductURLs[dr.Domain] = dr.ProductURLs
			result.Visited[dr.Domain] = dr.Visited
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return result, err
	}
	return result, nil
}
