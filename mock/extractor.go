package mock

import "github.com/shopcrawl/shopcrawl"

var _ shopcrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of shopcrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(sourceURL string, html string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(sourceURL string, html string) ([]string, error) {
	return e.ExtractLinksFn(sourceURL, html)
}
