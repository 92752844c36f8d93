package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopcrawl/shopcrawl"
)

// crawlStats is the summary written next to the results file.
type crawlStats struct {
	Domains               []string       `json:"domains"`
	TotalProductURLs      int            `json:"total_product_urls"`
	ProductURLsPerDomain  map[string]int `json:"product_urls_per_domain"`
	PagesCrawledPerDomain map[string]int `json:"pages_crawled_per_domain"`
}

// writeResults writes the discovered product URLs to path and a
// crawl summary to the matching _stats file.
func writeResults(path string, result *shopcrawl.CrawlResult) error {
	urls := make(map[string][]string, len(result.ProductURLs))
	stats := crawlStats{
		ProductURLsPerDomain:  make(map[string]int, len(result.ProductURLs)),
		PagesCrawledPerDomain: make(map[string]int, len(result.Visited)),
	}
	for domain, visited := range result.Visited {
		found := result.ProductURLs[domain]
		if found == nil {
			found = []string{}
		}
		urls[domain.String()] = found
		stats.Domains = append(stats.Domains, domain.String())
		stats.ProductURLsPerDomain[domain.String()] = len(found)
		stats.PagesCrawledPerDomain[domain.String()] = visited
		stats.TotalProductURLs += len(found)
	}

	if err := writeJSON(path, urls); err != nil {
		return err
	}
	return writeJSON(statsPath(path), stats)
}

// statsPath derives the stats file name from the results file name.
func statsPath(path string) string {
	return strings.TrimSuffix(path, ".json") + "_stats.json"
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
