// Package rod provides the browser-impersonating implementation of
// shopcrawl.Fetcher. It drives a real headless Chrome through
// browser automation, so flagged sites see a genuine browser
// TLS/HTTP fingerprint.
package rod

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/shopcrawl/shopcrawl"
)

// DefaultFetchTimeout is the default timeout for browser fetches.
// Browser navigation is slower than a plain GET.
const DefaultFetchTimeout = 30 * time.Second

// DefaultProfile is the browser profile impersonated when none is
// configured.
const DefaultProfile = "chrome120"

// Ensure Fetcher implements shopcrawl.Fetcher at compile time.
var _ shopcrawl.Fetcher = (*Fetcher)(nil)

var chromeProfile = regexp.MustCompile(`^chrome(\d+)$`)

// Fetcher retrieves page bodies using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser    *rod.Browser
	timeout    time.Duration
	profile    string
	userAgent  string
	minBodyLen int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-fetch timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProfile selects the browser profile to impersonate, e.g.
// "chrome120". Unknown names keep the launched browser's own
// fingerprint.
func WithProfile(name string) Option {
	return func(f *Fetcher) {
		f.profile = name
	}
}

// WithMinBodyLength sets the minimum accepted body size.
func WithMinBodyLength(n int) Option {
	return func(f *Fetcher) {
		f.minBodyLen = n
	}
}

// NewFetcher creates a Fetcher that launches a headless Chrome
// browser. Close must be called when the Fetcher is no longer
// needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:    DefaultFetchTimeout,
		profile:    DefaultProfile,
		minBodyLen: 100,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.userAgent = ProfileUserAgent(f.profile)

	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f.browser = browser
	return f, nil
}

// Fetch navigates to the URL in a fresh page and returns the
// rendered HTML. Outcomes are classified with the fetch-outcome
// error codes; navigation past the deadline reports ETIMEOUT.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", shopcrawl.Errorf(shopcrawl.EINTERNAL, "creating page: %v", err)
	}
	defer page.Close()

	page = page.Context(fetchCtx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", shopcrawl.Errorf(shopcrawl.EINTERNAL, "setting user agent: %v", err)
		}
	}

	if err := page.Navigate(url); err != nil {
		return "", classify(fetchCtx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classify(fetchCtx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", classify(fetchCtx, url, err)
	}
	if len(html) < f.minBodyLen {
		return "", shopcrawl.Errorf(shopcrawl.ESHORTBODY, "body of %s too short (%d bytes)", url, len(html))
	}

	return html, nil
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}

// classify maps a browser automation failure to a fetch-outcome
// error code.
func classify(ctx context.Context, url string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return shopcrawl.Errorf(shopcrawl.ETIMEOUT, "timeout fetching %s", url)
	}
	return shopcrawl.Errorf(shopcrawl.EINTERNAL, "browser fetch of %s: %v", url, err)
}

// ProfileUserAgent maps an impersonation profile name to the
// User-Agent string the browser announces. Unknown names return ""
// so the browser keeps its own identity.
func ProfileUserAgent(profile string) string {
	m := chromeProfile.FindStringSubmatch(profile)
	if m == nil {
		return ""
	}
	return fmt.Sprintf(
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s.0.0.0 Safari/537.36",
		m[1],
	)
}
