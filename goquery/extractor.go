// Package goquery provides HTML analysis implementations backed by
// the goquery CSS selector library: same-origin link extraction and
// product-page content inspection.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.LinkExtractor = (*Extractor)(nil)

// productCardSelectors identifies product-card-like elements whose
// links primary anchor extraction can miss when cards are
// JS-rendered. Inspecting them is best effort, not a correctness
// requirement.
const productCardSelectors = ".product-card, .product-item, .product-box, .product-grid-item, [class*=\"product\"]"

// Extractor extracts same-origin links from HTML pages.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractLinks parses html and returns every same-origin link,
// resolved to an absolute URL with the fragment stripped and the
// query preserved. Relative links resolve against a <base href>
// element when present, otherwise against sourceURL. The result is
// deduplicated in document order.
func (e *Extractor) ExtractLinks(sourceURL string, html string) ([]string, error) {
	source, err := url.Parse(sourceURL)
	if err != nil || source.Host == "" {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "invalid source URL %q", sourceURL)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	base := source
	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if resolved, err := source.Parse(href); err == nil {
			base = resolved
		}
	}

	seen := make(map[string]bool)
	var links []string

	add := func(href string) {
		href = strings.TrimSpace(href)
		if href == "" || isNonCrawlableLink(href) {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		// Same-domain policy: only the source page's origin is
		// followed.
		if resolved.Scheme != source.Scheme || resolved.Host != source.Host {
			return
		}
		resolved.Fragment = ""
		normalized := resolved.String()
		if seen[normalized] {
			return
		}
		seen[normalized] = true
		links = append(links, normalized)
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			add(href)
		}
	})

	// Product cards sometimes carry their target on the card element
	// or a data attribute instead of an anchor.
	doc.Find(productCardSelectors).Each(func(_ int, sel *goquery.Selection) {
		if href, ok := sel.Attr("href"); ok {
			add(href)
			return
		}
		if href, ok := sel.Attr("data-url"); ok {
			add(href)
			return
		}
		if href, ok := sel.Attr("data-href"); ok {
			add(href)
			return
		}
		if href, ok := sel.Find("a[href]").First().Attr("href"); ok {
			add(href)
		}
	})

	return links, nil
}

// isNonCrawlableLink reports hrefs that can never be fetched:
// javascript:, mailto:, tel:, and bare fragments.
func isNonCrawlableLink(href string) bool {
	lower := strings.ToLower(href)
	return strings.HasPrefix(lower, "javascript:") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "tel:") ||
		strings.HasPrefix(href, "#")
}
