package shopcrawl

// CrawlResult aggregates what a crawl discovered across all domains.
type CrawlResult struct {
	// ProductURLs maps each domain to the product URLs discovered
	// for it, in discovery order.
	ProductURLs map[Domain][]string

	// Visited maps each domain to the number of pages fetched
	// (successfully or not).
	Visited map[Domain]int
}

// TotalProducts returns the number of product URLs across all
// domains.
func (r *CrawlResult) TotalProducts() int {
	var n int
	for _, urls := range r.ProductURLs {
		n += len(urls)
	}
	return n
}

// ProgressType indicates the type of progress event.
type ProgressType int

// Progress event types emitted while a domain crawl runs.
const (
	ProgressStarted ProgressType = iota
	ProgressPage
	ProgressProduct
	ProgressFinished
)

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type     ProgressType
	Domain   Domain
	URL      string
	Visited  int
	Products int
	Queued   int
	Err      error
}

// ProgressFunc is a callback for reporting crawl progress. It may be
// called concurrently from different domains' engines.
type ProgressFunc func(event ProgressEvent)
