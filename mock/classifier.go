package mock

import "github.com/shopcrawl/shopcrawl"

var _ shopcrawl.ProductClassifier = (*ProductClassifier)(nil)

// ProductClassifier is a mock implementation of
// shopcrawl.ProductClassifier.
type ProductClassifier struct {
	ClassifyFn        func(url string, html string) bool
	LearnedPatternsFn func(domain shopcrawl.Domain) []string
}

func (c *ProductClassifier) Classify(url string, html string) bool {
	return c.ClassifyFn(url, html)
}

func (c *ProductClassifier) LearnedPatterns(domain shopcrawl.Domain) []string {
	if c.LearnedPatternsFn == nil {
		return nil
	}
	return c.LearnedPatternsFn(domain)
}

var _ shopcrawl.PageInspector = (*PageInspector)(nil)

// PageInspector is a mock implementation of shopcrawl.PageInspector.
type PageInspector struct {
	InspectFn func(html string) (*shopcrawl.PageSignals, error)
}

func (i *PageInspector) Inspect(html string) (*shopcrawl.PageSignals, error) {
	return i.InspectFn(html)
}
