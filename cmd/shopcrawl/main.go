// Command shopcrawl discovers product URLs on e-commerce websites.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/alecthomas/kong"
	"github.com/shopcrawl/shopcrawl"
	"github.com/shopcrawl/shopcrawl/crawl"
	"github.com/shopcrawl/shopcrawl/enrich"
	"github.com/shopcrawl/shopcrawl/goquery"
	shophttp "github.com/shopcrawl/shopcrawl/http"
	"github.com/shopcrawl/shopcrawl/rod"
	shopslog "github.com/shopcrawl/shopcrawl/slog"
	"github.com/shopcrawl/shopcrawl/sqlite"
	"github.com/shopcrawl/shopcrawl/yaml"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("shopcrawl"),
		kong.Description("Discover product URLs on e-commerce websites"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 || (len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help")) {
		_, _ = parser.Parse([]string{"--help"})
		if len(args) == 0 {
			return fmt.Errorf("no arguments provided")
		}
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Normalize domains up front so a typo fails before any network
	// work.
	domains := make([]shopcrawl.Domain, 0, len(cli.Domains))
	for _, raw := range cli.Domains {
		domain, err := shopcrawl.NormalizeDomain(raw)
		if err != nil {
			return err
		}
		domains = append(domains, domain)
	}

	configs := shopcrawl.DefaultSiteConfigs()
	if cli.SiteConfig != "" {
		loaded, err := yaml.LoadSiteConfigs(cli.SiteConfig)
		if err != nil {
			return err
		}
		configs.Merge(loaded)
	}

	// Wire transports.
	httpOpts := []shophttp.Option{
		shophttp.WithTimeout(cli.Timeout),
		shophttp.WithSiteConfigs(configs),
	}
	if cli.UserAgent != "" {
		httpOpts = append(httpOpts, shophttp.WithUserAgent(cli.UserAgent))
	}
	plain := shophttp.NewFetcher(httpOpts...)

	var impersonating shopcrawl.Fetcher
	if !cli.NoBrowser && anyImpersonated(configs, domains) {
		browser, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithProfile(cli.BrowserProfile),
		)
		if err != nil {
			logger.Warn("browser unavailable, flagged sites use the plain transport",
				"err", err,
			)
		} else {
			impersonating = browser
		}
	}

	var fetcher shopcrawl.Fetcher = &crawl.TransportSelector{
		Plain:         plain,
		Impersonating: impersonating,
		Configs:       configs,
	}
	defer fetcher.Close()
	fetcher = shopslog.NewLoggingFetcher(fetcher, logger)

	classifier := shopslog.NewLoggingClassifier(
		crawl.NewClassifier(goquery.NewInspector()),
		logger,
	)

	enricher, err := enrich.NewEnricher(fetcher, configs)
	if err != nil {
		return err
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Limiter:     crawl.NewDomainLimiter(cli.Delay, crawl.WithSiteConfigs(configs)),
		Extractor:   goquery.NewExtractor(),
		Classifier:  classifier,
		Enricher:    shopslog.NewLoggingEnricher(enricher, logger),
		Configs:     configs,
		Budget:      cli.MaxPages,
		Concurrency: cli.Concurrency,
		Progress:    progressLogger(logger),
	}

	logger.Info("starting crawl", "domains", len(domains))
	startedAt := time.Now()

	result, crawlErr := crawler.Crawl(ctx, domains)
	finishedAt := time.Now()
	if result != nil {
		logger.Info("crawl completed",
			"duration", finishedAt.Sub(startedAt).Round(time.Second),
			"products", result.TotalProducts(),
		)

		if err := writeResults(cli.Output, result); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Results saved to %s\n", cli.Output)

		if cli.DB != "" {
			runID, err := saveRun(ctx, cli.DB, result, startedAt, finishedAt)
			if err != nil {
				return err
			}
			fmt.Fprintf(stdout, "Run %s recorded in %s\n", runID, cli.DB)
		}
	}
	return crawlErr
}

// anyImpersonated reports whether any requested domain is flagged
// for browser impersonation, so the browser only launches when
// needed.
func anyImpersonated(configs shopcrawl.SiteConfigTable, domains []shopcrawl.Domain) bool {
	for _, domain := range domains {
		if cfg := configs.Lookup(domain); cfg != nil && cfg.Impersonate {
			return true
		}
	}
	return false
}

// progressLogger reports crawl progress through the logger.
func progressLogger(logger *slog.Logger) shopcrawl.ProgressFunc {
	return func(event shopcrawl.ProgressEvent) {
		switch event.Type {
		case shopcrawl.ProgressStarted:
			logger.Info("crawling", "domain", event.Domain, "queued", event.Queued)
		case shopcrawl.ProgressPage:
			logger.Debug("page",
				"domain", event.Domain,
				"url", event.URL,
				"visited", event.Visited,
				"queued", event.Queued,
				"err", event.Err,
			)
		case shopcrawl.ProgressProduct:
			logger.Info("found product", "url", event.URL)
		case shopcrawl.ProgressFinished:
			logger.Info("domain done",
				"domain", event.Domain,
				"visited", event.Visited,
				"products", event.Products,
			)
		}
	}
}

// saveRun records the crawl in a SQLite database.
func saveRun(ctx context.Context, path string, result *shopcrawl.CrawlResult, startedAt, finishedAt time.Time) (string, error) {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return "", err
	}
	defer db.Close()

	return sqlite.NewRunStore(db).SaveRun(ctx, result, startedAt, finishedAt)
}
