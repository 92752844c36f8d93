// Package enrich expands product discovery through site-specific
// structured APIs: a classified product URL is converted into
// templated API calls whose responses surface related product URLs
// that link-following alone would miss.
package enrich

import (
	"context"
	"encoding/json"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.Enricher = (*Enricher)(nil)

// Enricher issues per-site API calls derived from product URLs.
// All failures are best effort: the first error is returned for
// logging alongside whatever URLs were gathered, and callers must
// never abort the crawl over it.
type Enricher struct {
	fetcher shopcrawl.Fetcher
	rules   map[string]*siteRules
}

// siteRules holds a site's enrichment config with its ID extraction
// patterns compiled.
type siteRules struct {
	cfg        *shopcrawl.EnrichmentConfig
	productRe  *regexp.Regexp
	categoryRe *regexp.Regexp
}

// NewEnricher creates an Enricher for every site in the table that
// carries enrichment configuration. Returns EINVALID if an ID
// extraction pattern does not compile.
func NewEnricher(fetcher shopcrawl.Fetcher, configs shopcrawl.SiteConfigTable) (*Enricher, error) {
	e := &Enricher{
		fetcher: fetcher,
		rules:   make(map[string]*siteRules),
	}
	for host, cfg := range configs {
		if cfg == nil || cfg.Enrichment == nil {
			continue
		}
		rules := &siteRules{cfg: cfg.Enrichment}
		var err error
		if p := cfg.Enrichment.ProductIDPattern; p != "" {
			if rules.productRe, err = regexp.Compile(p); err != nil {
				return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "product ID pattern for %s: %v", host, err)
			}
		}
		if p := cfg.Enrichment.CategoryIDPattern; p != "" {
			if rules.categoryRe, err = regexp.Compile(p); err != nil {
				return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "category ID pattern for %s: %v", host, err)
			}
		}
		e.rules[host] = rules
	}
	return e, nil
}

// Enrich extracts a product or category identifier from the URL and
// calls the site's API endpoints with it. Domains without enrichment
// configuration, and URLs no extraction rule matches, return
// (nil, nil).
func (e *Enricher) Enrich(ctx context.Context, productURL string, domain shopcrawl.Domain) ([]string, error) {
	rules, ok := e.rules[domain.Host()]
	if !ok {
		return nil, nil
	}

	u, err := url.Parse(productURL)
	if err != nil {
		return nil, nil
	}
	path := u.Path

	var endpoints []string
	if id := extractID(rules.productRe, path); id != "" {
		for _, tmpl := range rules.cfg.ProductEndpoints {
			endpoints = append(endpoints, expand(tmpl, id, 0))
		}
	} else if id := extractID(rules.categoryRe, path); id != "" && rules.cfg.CategoryEndpoint != "" {
		pages := rules.cfg.CategoryPages
		if pages <= 0 {
			pages = shopcrawl.DefaultCategoryPages
		}
		for page := 1; page <= pages; page++ {
			endpoints = append(endpoints, expand(rules.cfg.CategoryEndpoint, id, page))
		}
	}
	if len(endpoints) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var found []string
	var firstErr error
	for _, endpoint := range endpoints {
		urls, err := e.call(ctx, domain, endpoint)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		for _, raw := range urls {
			absolute := resolve(domain, raw)
			if absolute == "" || seen[absolute] {
				continue
			}
			seen[absolute] = true
			found = append(found, absolute)
		}
	}
	return found, firstErr
}

// call fetches one API endpoint and decodes any product URLs from
// its response.
func (e *Enricher) call(ctx context.Context, domain shopcrawl.Domain, endpoint string) ([]string, error) {
	body, err := e.fetcher.Fetch(ctx, domain.String()+endpoint)
	if err != nil {
		return nil, err
	}
	return decodeProductURLs([]byte(body))
}

// productRecord is the one field every known response shape shares.
type productRecord struct {
	URL string `json:"url"`
}

// nestedResponse covers the object-shaped API responses: records
// under data.products, data.similar_products, or a top-level
// recommendations list.
type nestedResponse struct {
	Data struct {
		Products        []productRecord `json:"products"`
		SimilarProducts []productRecord `json:"similar_products"`
	} `json:"data"`
	Recommendations []productRecord `json:"recommendations"`
}

// decodeProductURLs parses an API response defensively. The known
// shapes form a tagged union: a bare list of records, or a nested
// object variant. Unrecognized shapes yield no URLs rather than an
// error probe chain.
func decodeProductURLs(data []byte) ([]string, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var records []productRecord
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "malformed list response: %v", err)
		}
		return collect(records), nil
	}

	var nested nestedResponse
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "malformed object response: %v", err)
	}
	var urls []string
	urls = append(urls, collect(nested.Data.Products)...)
	urls = append(urls, collect(nested.Data.SimilarProducts)...)
	urls = append(urls, collect(nested.Recommendations)...)
	return urls, nil
}

func collect(records []productRecord) []string {
	var urls []string
	for _, r := range records {
		if r.URL != "" {
			urls = append(urls, r.URL)
		}
	}
	return urls
}

// extractID applies an extraction pattern and returns its first
// capture group.
func extractID(re *regexp.Regexp, path string) string {
	if re == nil {
		return ""
	}
	m := re.FindStringSubmatch(path)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

// expand substitutes {id} and {page} placeholders in an endpoint
// template.
func expand(tmpl string, id string, page int) string {
	out := strings.ReplaceAll(tmpl, "{id}", id)
	if page > 0 {
		out = strings.ReplaceAll(out, "{page}", strconv.Itoa(page))
	}
	return out
}

// resolve makes an API-supplied URL absolute against the domain
// origin. Absolute URLs pass through unchanged.
func resolve(domain shopcrawl.Domain, raw string) string {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return domain.String() + raw
}
