// Package yaml loads per-site crawl configuration from YAML files.
// A file maps hosts to site settings and is merged over the built-in
// defaults by the caller.
package yaml

import (
	"os"
	"time"

	"github.com/shopcrawl/shopcrawl"
	"gopkg.in/yaml.v3"
)

// siteConfig mirrors shopcrawl.SiteConfig in YAML form. The request
// delay is expressed in seconds, matching the CLI's --delay unit.
type siteConfig struct {
	Headers      map[string]string `yaml:"headers"`
	RequestDelay float64           `yaml:"request_delay"`
	SeedPaths    []string          `yaml:"seed_paths"`
	Impersonate  bool              `yaml:"impersonate"`
	Enrichment   *enrichment       `yaml:"enrichment"`
}

type enrichment struct {
	ProductIDPattern  string   `yaml:"product_id_pattern"`
	CategoryIDPattern string   `yaml:"category_id_pattern"`
	ProductEndpoints  []string `yaml:"product_endpoints"`
	CategoryEndpoint  string   `yaml:"category_endpoint"`
	CategoryPages     int      `yaml:"category_pages"`
}

// LoadSiteConfigs reads a site configuration file.
func LoadSiteConfigs(path string) (shopcrawl.SiteConfigTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.ENOTFOUND, "site config %q: %v", path, err)
	}
	return ParseSiteConfigs(data)
}

// ParseSiteConfigs parses YAML site configuration data keyed by
// host.
func ParseSiteConfigs(data []byte) (shopcrawl.SiteConfigTable, error) {
	var file map[string]siteConfig
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "parsing site config: %v", err)
	}

	table := make(shopcrawl.SiteConfigTable, len(file))
	for host, sc := range file {
		cfg := &shopcrawl.SiteConfig{
			Headers:      sc.Headers,
			RequestDelay: time.Duration(sc.RequestDelay * float64(time.Second)),
			SeedPaths:    sc.SeedPaths,
			Impersonate:  sc.Impersonate,
		}
		if sc.Enrichment != nil {
			cfg.Enrichment = &shopcrawl.EnrichmentConfig{
				ProductIDPattern:  sc.Enrichment.ProductIDPattern,
				CategoryIDPattern: sc.Enrichment.CategoryIDPattern,
				ProductEndpoints:  sc.Enrichment.ProductEndpoints,
				CategoryEndpoint:  sc.Enrichment.CategoryEndpoint,
				CategoryPages:     sc.Enrichment.CategoryPages,
			}
		}
		table[host] = cfg
	}
	return table, nil
}
