package crawl

import (
	"context"
	"math/rand"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/shopcrawl/shopcrawl"
	"golang.org/x/sync/errgroup"
)

// Engine defaults.
const (
	DefaultBudget           = 1000
	DefaultConcurrency      = 10
	DefaultRateLimitBackoff = 10 * time.Second
	DefaultPauseMin         = 500 * time.Millisecond
	DefaultPauseMax         = time.Second

	// Frontier Bloom filter sizing.
	frontierExpectedURLs      = 100000
	frontierFalsePositiveRate = 0.01
)

// State is the lifecycle state of a domain's crawl.
type State int

// Crawl states. Drained and BudgetExhausted are the terminal states
// of a completed crawl; Canceled marks a crawl cut short by context
// cancellation with partial results.
const (
	StateSeeded State = iota
	StateRunning
	StateDrained
	StateBudgetExhausted
	StateCanceled
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateSeeded:
		return "seeded"
	case StateRunning:
		return "running"
	case StateDrained:
		return "drained"
	case StateBudgetExhausted:
		return "budget_exhausted"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// DomainResult holds the outcome of one domain's crawl.
type DomainResult struct {
	Domain      shopcrawl.Domain
	ProductURLs []string
	Visited     int
	State       State
}

// Engine drives the breadth-first crawl of a single domain: it owns
// the frontier and visited set, dispatches fetch batches under the
// concurrency cap, and aggregates product URLs until the queue
// drains or the page budget is exhausted.
//
// Frontier state is mutated only between batches, at the join point
// after all of a batch's fetches complete, so it needs no locking of
// its own.
type Engine struct {
	Domain     shopcrawl.Domain
	Fetcher    shopcrawl.Fetcher
	Limiter    shopcrawl.DomainLimiter
	Extractor  shopcrawl.LinkExtractor
	Classifier shopcrawl.ProductClassifier

	// Enricher is optional; nil disables API enrichment.
	Enricher shopcrawl.Enricher

	// Configs supplies seed paths. May be nil.
	Configs shopcrawl.SiteConfigTable

	// Budget caps total fetch attempts. Zero means DefaultBudget.
	Budget int

	// Concurrency caps in-flight fetches per batch. Zero means
	// DefaultConcurrency.
	Concurrency int

	// PauseMin and PauseMax bound the randomized politeness pause
	// between batches. Both zero means the defaults; set PauseMax
	// negative to disable the pause.
	PauseMin time.Duration
	PauseMax time.Duration

	// RateLimitBackoff is the fixed wait after an HTTP 429 before
	// the domain's next batch. Zero means DefaultRateLimitBackoff.
	RateLimitBackoff time.Duration

	// Progress, if set, receives events as the crawl proceeds.
	Progress shopcrawl.ProgressFunc
}

// fetchOutcome is the result of one dispatched fetch.
type fetchOutcome struct {
	url  string
	body string
	err  error
}

// Run crawls the engine's domain to completion and returns what it
// discovered. Cancellation is not an error: the crawl stops issuing
// fetches and returns partial results in StateCanceled.
func (e *Engine) Run(ctx context.Context) (*DomainResult, error) {
	if e.Domain == "" {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "engine domain required")
	}

	budget := e.Budget
	if budget <= 0 {
		budget = DefaultBudget
	}
	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	e.seed(frontier)

	visited := make(map[string]bool)
	productSet := make(map[string]bool)
	var products []string
	contentHashes := make(map[uint64]bool)

	addProduct := func(url string) {
		if url == "" || productSet[url] {
			return
		}
		productSet[url] = true
		products = append(products, url)
	}

	e.emit(shopcrawl.ProgressEvent{Type: shopcrawl.ProgressStarted, Domain: e.Domain, Queued: frontier.Len()})

	state := StateRunning
	for state == StateRunning {
		if ctx.Err() != nil {
			state = StateCanceled
			break
		}

		max := concurrency
		if remaining := budget - len(visited); remaining < max {
			max = remaining
		}
		batch := nextBatch(frontier, visited, max)
		if len(batch) == 0 {
			if frontier.Len() == 0 {
				state = StateDrained
			}
			continue
		}

		outcomes := e.dispatch(ctx, batch)

		// Join point: all frontier mutations happen here, after the
		// batch completes.
		rateLimited := false
		for _, out := range outcomes {
			// Visited regardless of outcome, so a failing URL is
			// never retried.
			visited[out.url] = true

			e.emit(shopcrawl.ProgressEvent{
				Type:     shopcrawl.ProgressPage,
				Domain:   e.Domain,
				URL:      out.url,
				Visited:  len(visited),
				Products: len(products),
				Queued:   frontier.Len(),
				Err:      out.err,
			})

			if out.err != nil {
				if shopcrawl.ErrorCode(out.err) == shopcrawl.ERATELIMITED {
					rateLimited = true
				}
				continue
			}

			if e.Classifier.Classify(out.url, out.body) {
				addProduct(out.url)
				e.emit(shopcrawl.ProgressEvent{
					Type:     shopcrawl.ProgressProduct,
					Domain:   e.Domain,
					URL:      out.url,
					Visited:  len(visited),
					Products: len(products),
				})
				if e.Enricher != nil {
					// Best effort: errors are reported through the
					// enricher's own logging, never fail the crawl.
					extra, _ := e.Enricher.Enrich(ctx, out.url, e.Domain)
					for _, url := range extra {
						addProduct(url)
					}
				}
			}

			// Identical bodies served at distinct URLs contribute
			// links only once.
			hash := xxhash.Sum64String(out.body)
			if contentHashes[hash] {
				continue
			}
			contentHashes[hash] = true

			links, err := e.Extractor.ExtractLinks(out.url, out.body)
			if err != nil {
				continue
			}
			for _, link := range links {
				if !visited[link] {
					frontier.Push(link)
				}
			}
		}

		if len(visited) >= budget {
			state = StateBudgetExhausted
			break
		}

		if rateLimited {
			if !sleep(ctx, e.rateLimitBackoff()) {
				state = StateCanceled
				break
			}
		}
		if !sleep(ctx, e.batchPause()) {
			state = StateCanceled
			break
		}
	}

	e.emit(shopcrawl.ProgressEvent{
		Type:     shopcrawl.ProgressFinished,
		Domain:   e.Domain,
		Visited:  len(visited),
		Products: len(products),
		Queued:   frontier.Len(),
	})

	return &DomainResult{
		Domain:      e.Domain,
		ProductURLs: products,
		Visited:     len(visited),
		State:       state,
	}, nil
}

// seed primes the frontier with the homepage and the site's likely
// listing paths.
func (e *Engine) seed(frontier *Frontier) {
	frontier.Push(e.Domain.String())

	paths := shopcrawl.DefaultSeedPaths()
	if cfg := e.Configs.Lookup(e.Domain); cfg != nil && cfg.SeedPaths != nil {
		paths = cfg.SeedPaths
	}
	for _, path := range paths {
		frontier.Push(e.Domain.String() + path)
	}
}

// dispatch fetches a batch concurrently and returns the outcomes in
// batch order. Completion order within the batch is not guaranteed;
// the caller joins the whole set.
func (e *Engine) dispatch(ctx context.Context, batch []string) []fetchOutcome {
	outcomes := make([]fetchOutcome, len(batch))

	g := errgroup.Group{}
	for i, url := range batch {
		g.Go(func() error {
			if err := e.Limiter.Wait(ctx, e.Domain); err != nil {
				outcomes[i] = fetchOutcome{url: url, err: err}
				return nil
			}
			body, err := e.Fetcher.Fetch(ctx, url)
			outcomes[i] = fetchOutcome{url: url, body: body, err: err}
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// nextBatch pops up to max URLs not yet visited from the frontier.
func nextBatch(frontier *Frontier, visited map[string]bool, max int) []string {
	var batch []string
	for len(batch) < max {
		url, ok := frontier.Pop()
		if !ok {
			break
		}
		if visited[url] {
			continue
		}
		batch = append(batch, url)
	}
	return batch
}

func (e *Engine) rateLimitBackoff() time.Duration {
	if e.RateLimitBackoff > 0 {
		return e.RateLimitBackoff
	}
	return DefaultRateLimitBackoff
}

// batchPause returns a randomized politeness pause between batches.
func (e *Engine) batchPause() time.Duration {
	min, max := e.PauseMin, e.PauseMax
	if max < 0 {
		return 0
	}
	if min == 0 && max == 0 {
		min, max = DefaultPauseMin, DefaultPauseMax
	}
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

func (e *Engine) emit(event shopcrawl.ProgressEvent) {
	if e.Progress != nil {
		e.Progress(event)
	}
}

// sleep waits for d or until the context is canceled. It reports
// false on cancellation.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(d):
		return true
	}
}
