package shopcrawl

// LinkExtractor parses fetched HTML and returns candidate crawl
// targets.
type LinkExtractor interface {
	// ExtractLinks resolves every hyperlink in html against the
	// source URL (or a <base href> element when present), keeps only
	// links with the source page's origin, strips fragments, and
	// returns a deduplicated list. Query strings are preserved.
	ExtractLinks(sourceURL string, html string) ([]string, error)
}
