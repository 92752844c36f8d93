package shopcrawl

// ProductClassifier decides whether a URL/page pair is a product
// page.
type ProductClassifier interface {
	// Classify reports whether the URL points at a product page.
	// With empty html only the URL-shape stage runs, making the call
	// a pure function of the URL and the domain's learned patterns.
	// With html present, content analysis may both classify the page
	// and learn new URL patterns for the URL's domain as a side
	// effect.
	Classify(url string, html string) bool

	// LearnedPatterns returns the patterns learned so far for a
	// domain, in learning order. The list is append-only for the
	// lifetime of the classifier.
	LearnedPatterns(domain Domain) []string
}

// PageSignals summarizes product-page evidence found in page content.
type PageSignals struct {
	// Indicators is the number of distinct product indicator tokens
	// present (add-to-cart controls, product-ID attributes, price
	// and review markers).
	Indicators int

	// SchemaProduct reports schema.org Product structured-data
	// markup.
	SchemaProduct bool

	// HasPrice reports a price-display element.
	HasPrice bool

	// HasCartControl reports an add-to-cart-style control.
	HasCartControl bool
}

// PageInspector scans page content for product-page evidence.
type PageInspector interface {
	// Inspect parses html and reports the product signals it
	// contains.
	Inspect(html string) (*PageSignals, error)
}
