package shopcrawl

import "context"

// Fetcher performs one HTTP GET and returns the page body.
// Implementations classify failures with the fetch-outcome error
// codes (ETIMEOUT, EFORBIDDEN, ERATELIMITED, EUNAVAILABLE,
// ESHORTBODY); content is all-or-nothing.
type Fetcher interface {
	// Fetch retrieves the body of the given URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases transport resources.
	Close() error
}
