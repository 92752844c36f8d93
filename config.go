package shopcrawl

import "time"

// SiteConfig holds optional per-site crawl settings. The zero value
// means "use defaults" for every field.
type SiteConfig struct {
	// Headers are extra request headers sent with every fetch to
	// this site.
	Headers map[string]string

	// RequestDelay overrides the global inter-request delay for this
	// site. Zero means use the default.
	RequestDelay time.Duration

	// SeedPaths are likely listing paths enqueued alongside the
	// homepage when the crawl starts. Nil means use DefaultSeedPaths;
	// an empty slice seeds the homepage alone.
	SeedPaths []string

	// Impersonate selects the browser-impersonating transport for
	// this site instead of the plain HTTP client.
	Impersonate bool

	// Enrichment configures structured-API product discovery.
	// Nil disables enrichment for this site.
	Enrichment *EnrichmentConfig
}

// EnrichmentConfig describes a site's structured product API.
// Endpoint templates are joined to the domain origin and may contain
// {id} and {page} placeholders.
type EnrichmentConfig struct {
	// ProductIDPattern is a regular expression applied to a URL path;
	// its first capture group is the product identifier.
	ProductIDPattern string

	// CategoryIDPattern is a regular expression applied to a URL
	// path; its first capture group is the category identifier.
	CategoryIDPattern string

	// ProductEndpoints are API path templates called with a product
	// identifier (e.g. similar-products listings).
	ProductEndpoints []string

	// CategoryEndpoint is a paginated API path template called with a
	// category identifier.
	CategoryEndpoint string

	// CategoryPages is how many pages of CategoryEndpoint to fetch.
	// Zero means DefaultCategoryPages.
	CategoryPages int
}

// DefaultCategoryPages is how many category listing pages enrichment
// fetches when the site config does not say otherwise.
const DefaultCategoryPages = 3

// SiteConfigTable maps normalized hosts to their site configuration.
type SiteConfigTable map[string]*SiteConfig

// Lookup returns the configuration for a domain, or nil when the site
// has no entry. Absence means "use defaults", not an error.
func (t SiteConfigTable) Lookup(d Domain) *SiteConfig {
	if t == nil {
		return nil
	}
	return t[d.Host()]
}

// Merge overlays other onto the table, replacing whole entries by
// host.
func (t SiteConfigTable) Merge(other SiteConfigTable) {
	for host, cfg := range other {
		t[host] = cfg
	}
}

// DefaultSeedPaths returns the generic listing paths used to prime
// discovery on sites without a configured seed list. A cold homepage
// alone often under-links deep catalog pages.
func DefaultSeedPaths() []string {
	return []string{
		"/products",
		"/shop",
		"/catalog",
		"/collection",
		"/category",
		"/fashion",
		"/clothing",
		"/apparel",
		"/accessories",
		"/footwear",
		"/beauty",
	}
}

// DefaultSiteConfigs returns the built-in per-site configuration
// table.
func DefaultSiteConfigs() SiteConfigTable {
	return SiteConfigTable{
		"www.nykaafashion.com": nykaaFashionConfig(),
		"nykaafashion.com":     nykaaFashionConfig(),
		"www.tatacliq.com":     tataCliqConfig(),
		"tatacliq.com":         tataCliqConfig(),
	}
}

func nykaaFashionConfig() *SiteConfig {
	return &SiteConfig{
		Headers: map[string]string{
			"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"accept-language": "en-US,en;q=0.9",
			"cache-control":   "max-age=0",
		},
		RequestDelay: 2 * time.Second,
		Impersonate:  true,
		SeedPaths: []string{
			"/women", "/men", "/kids", "/home", "/beauty",
			"/accessories", "/footwear", "/jewellery", "/bags",
			"/watches", "/sunglasses", "/sports",
			"/new-arrivals", "/trending", "/best-sellers",
			"/deals-of-the-day", "/clearance-sale",
		},
		Enrichment: &EnrichmentConfig{
			ProductIDPattern:  `/p/(\d+)$`,
			CategoryIDPattern: `/c/(\d+)$`,
			ProductEndpoints: []string{
				"/rest/appapi/V3/products/id/{id}?currency=INR&country_code=IN&size_data=true&platform=MSITE",
				"/rest/appapi/V3/products/similar/{id}?currency=INR&country_code=IN",
			},
			CategoryEndpoint: "/rest/appapi/V3/categories/{id}/products?currency=INR&country_code=IN&page={page}&size=48",
		},
	}
}

func tataCliqConfig() *SiteConfig {
	return &SiteConfig{
		Headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Upgrade-Insecure-Requests": "1",
			"Cache-Control":             "max-age=0",
		},
		RequestDelay: 2 * time.Second,
		Enrichment: &EnrichmentConfig{
			ProductIDPattern: `/p-([a-z0-9]+)$`,
			ProductEndpoints: []string{
				"/marketplacewebservices/v2/mpl/products/{id}/recommendations",
			},
		},
	}
}
