// Package http provides the plain HTTP implementation of
// shopcrawl.Fetcher, used for sites that don't require anti-bot
// evasion.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopcrawl/shopcrawl"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the crawler as a desktop Chrome
// browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DefaultMinBodyLength is the minimum successful body size. Shorter
// bodies are likely error or interstitial pages and are rejected as
// ESHORTBODY.
const DefaultMinBodyLength = 100

// Ensure Fetcher implements shopcrawl.Fetcher at compile time.
var _ shopcrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page bodies using a standard HTTP client with a
// configured User-Agent and optional per-site extra headers.
type Fetcher struct {
	client     *http.Client
	timeout    time.Duration
	userAgent  string
	configs    shopcrawl.SiteConfigTable
	minBodyLen int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithSiteConfigs supplies per-site extra request headers.
func WithSiteConfigs(configs shopcrawl.SiteConfigTable) Option {
	return func(f *Fetcher) {
		f.configs = configs
	}
}

// WithMinBodyLength sets the minimum accepted body size.
func WithMinBodyLength(n int) Option {
	return func(f *Fetcher) {
		f.minBodyLen = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		userAgent:  DefaultUserAgent,
		minBodyLen: DefaultMinBodyLength,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL and classifies the
// outcome with the fetch-outcome error codes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", shopcrawl.Errorf(shopcrawl.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	if domain, err := shopcrawl.Origin(rawURL); err == nil {
		if cfg := f.configs.Lookup(domain); cfg != nil {
			for k, v := range cfg.Headers {
				req.Header.Set(k, v)
			}
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(err) {
			return "", shopcrawl.Errorf(shopcrawl.ETIMEOUT, "timeout fetching %s", rawURL)
		}
		return "", shopcrawl.Errorf(shopcrawl.EINTERNAL, "transport error fetching %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// Fall through to body handling.
	case resp.StatusCode == http.StatusForbidden:
		return "", shopcrawl.Errorf(shopcrawl.EFORBIDDEN, "access forbidden (403) for %s", rawURL)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", shopcrawl.Errorf(shopcrawl.ERATELIMITED, "rate limited (429) for %s", rawURL)
	default:
		return "", shopcrawl.Errorf(shopcrawl.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return "", shopcrawl.Errorf(shopcrawl.ETIMEOUT, "timeout reading %s", rawURL)
		}
		return "", shopcrawl.Errorf(shopcrawl.EINTERNAL, "reading body of %s: %v", rawURL, err)
	}
	if len(body) < f.minBodyLen {
		return "", shopcrawl.Errorf(shopcrawl.ESHORTBODY, "body of %s too short (%d bytes)", rawURL, len(body))
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op
// since http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}
