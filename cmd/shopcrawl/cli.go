package main

import "time"

// CLI defines the command-line interface.
type CLI struct {
	Domains []string `arg:"" help:"Domains to crawl (bare host or full origin)."`

	Output string `default:"product_urls.json" help:"Output file for discovered product URLs."`
	DB     string `help:"Optional SQLite database path to record the run."`

	SiteConfig string `help:"YAML site configuration file merged over built-in defaults."`

	MaxPages    int           `default:"1000" help:"Maximum pages to crawl per domain."`
	Concurrency int           `default:"10" help:"Maximum concurrent requests per domain."`
	Delay       time.Duration `default:"500ms" help:"Minimum delay between requests to the same domain."`
	Timeout     time.Duration `default:"30s" help:"Request timeout."`

	UserAgent      string `help:"User-Agent override for the plain HTTP transport."`
	BrowserProfile string `default:"chrome120" help:"Browser profile to impersonate on flagged sites."`
	NoBrowser      bool   `help:"Disable the browser-impersonating transport."`

	Debug bool `help:"Enable debug logging."`
}
