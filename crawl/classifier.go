package crawl

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.ProductClassifier = (*Classifier)(nil)

const (
	// minContentIndicators is how many distinct content indicator
	// tokens a page must show before it is classified as a product
	// and its URL shape is learned.
	minContentIndicators = 2

	// minKeywordDepth is the minimum path depth for keyword-pattern
	// matches, so top-level category pages don't classify as
	// products.
	minKeywordDepth = 3
)

// keywordPathPatterns is the fixed global set of catalog keyword
// markers, matched against the URL path. A match classifies only at
// path depth >= minKeywordDepth.
var keywordPathPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/products?/`),
	regexp.MustCompile(`/items?/`),
	regexp.MustCompile(`/p/`),
	regexp.MustCompile(`/pd/`),
	regexp.MustCompile(`/buy/`),
	regexp.MustCompile(`/shop/`),
	regexp.MustCompile(`/goods?/`),
	regexp.MustCompile(`/detail/`),
	regexp.MustCompile(`/prod/`),
	regexp.MustCompile(`/catalog/`),
	regexp.MustCompile(`/dp/`),
	regexp.MustCompile(`/sku/`),
	regexp.MustCompile(`/listing/`),
	regexp.MustCompile(`/store/product/`),
	regexp.MustCompile(`/fashion/`),
	regexp.MustCompile(`/clothing/`),
	regexp.MustCompile(`/apparel/`),
	regexp.MustCompile(`/accessories/`),
	regexp.MustCompile(`/jewellery/`),
	regexp.MustCompile(`/footwear/`),
	regexp.MustCompile(`/beauty/`),
	regexp.MustCompile(`/electronics/`),
}

var (
	digitsOnly       = regexp.MustCompile(`^\d+$`)
	trailingID       = regexp.MustCompile(`^[^/]+-\d+$`)
	alnumID          = regexp.MustCompile(`^p-[a-z0-9]+$`)
	numericHTML      = regexp.MustCompile(`^\d+\.html$`)
	trailingIDHTML   = regexp.MustCompile(`^[^/]+-\d+\.html$`)
	markedIDHTML     = regexp.MustCompile(`-p[d]?-\d+\.html$`)
	literalIDSegment = regexp.MustCompile(`^id\d+$`)
)

// Classifier decides whether a URL/page pair is a product page.
// Stage 1 matches the URL path against ID shapes and the global
// keyword pattern set plus the URL's domain's learned patterns;
// stage 2 analyzes page content and learns new path patterns for the
// domain. Learned patterns are domain-scoped and append-only.
//
// Classifier is safe for concurrent use.
type Classifier struct {
	inspector shopcrawl.PageInspector

	mu      sync.Mutex
	learned map[shopcrawl.Domain][]string
}

// NewClassifier creates a Classifier that delegates content analysis
// to the given inspector.
func NewClassifier(inspector shopcrawl.PageInspector) *Classifier {
	return &Classifier{
		inspector: inspector,
		learned:   make(map[shopcrawl.Domain][]string),
	}
}

// Classify reports whether the URL points at a product page.
// Pure URL matching runs first; content analysis only runs when the
// URL shape is unknown, and its findings are cached as learned
// patterns so sibling pages on the same domain classify without
// content.
func (c *Classifier) Classify(rawURL string, html string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}

	domain, err := shopcrawl.Origin(rawURL)
	if err != nil {
		return false
	}

	if c.matchesShape(domain, u.Path) {
		return true
	}

	if html == "" || c.inspector == nil {
		return false
	}

	signals, err := c.inspector.Inspect(html)
	if err != nil {
		return false
	}

	if signals.Indicators >= minContentIndicators {
		c.learn(domain, u.Path)
		return true
	}
	if signals.SchemaProduct {
		return true
	}
	if signals.HasPrice && signals.HasCartControl {
		return true
	}
	return false
}

// LearnedPatterns returns a copy of the patterns learned for a
// domain, in learning order.
func (c *Classifier) LearnedPatterns(domain shopcrawl.Domain) []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	patterns := c.learned[domain]
	out := make([]string, len(patterns))
	copy(out, patterns)
	return out
}

// matchesShape runs the URL-shape stage.
func (c *Classifier) matchesShape(domain shopcrawl.Domain, path string) bool {
	segments := splitSegments(path)

	if isIDShape(segments) {
		return true
	}

	if len(segments) < minKeywordDepth {
		return false
	}
	for _, re := range keywordPathPatterns {
		if re.MatchString(path) {
			return true
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, prefix := range c.learned[domain] {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// isIDShape reports whether the path segments form one of the known
// product-identifier shapes. Each shape is validated at its exact
// segment count with a numeric or identifier-like terminal segment.
func isIDShape(segments []string) bool {
	n := len(segments)
	switch {
	case n == 3 && (segments[1] == "p" || segments[1] == "c") && digitsOnly.MatchString(segments[2]):
		return true // /product-name/p/123456, /category-path/c/6826
	case n == 4 && segments[2] == "p" && digitsOnly.MatchString(segments[3]):
		return true // /category/product-name/p/123456
	case n == 5 && segments[3] == "p" && digitsOnly.MatchString(segments[4]):
		return true // /category/subcategory/product-name/p/123456
	case n == 2 && digitsOnly.MatchString(segments[1]):
		return true // /product-name/123456
	case n == 2 && alnumID.MatchString(segments[1]):
		return true // /product-name/p-mp000000024375865
	case n == 2 && numericHTML.MatchString(segments[1]):
		return true // /product-name/123456.html
	case n == 1 && trailingID.MatchString(segments[0]):
		return true // /product-name-123456
	case n == 1 && trailingIDHTML.MatchString(segments[0]):
		return true // /product-name-123456.html
	}
	if n > 0 {
		last := segments[n-1]
		if markedIDHTML.MatchString(last) || literalIDSegment.MatchString(last) {
			return true // /anything/name-p-123.html, /anything/id8721
		}
	}
	return false
}

// learn appends the path's first one- and two-segment prefixes to
// the domain's learned pattern list, skipping prefixes already
// present.
func (c *Classifier) learn(domain shopcrawl.Domain, path string) {
	segments := splitSegments(path)
	if len(segments) < 2 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.appendPattern(domain, "/"+segments[0]+"/")
	if len(segments) >= 3 {
		c.appendPattern(domain, "/"+segments[0]+"/"+segments[1]+"/")
	}
}

// appendPattern must be called with c.mu held.
func (c *Classifier) appendPattern(domain shopcrawl.Domain, pattern string) {
	for _, existing := range c.learned[domain] {
		if existing == pattern {
			return
		}
	}
	c.learned[domain] = append(c.learned[domain], pattern)
}

func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}
