package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopcrawl/shopcrawl"
)

// Run summarizes a persisted crawl run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
}

// RunStore persists crawl results.
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore backed by db.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

// SaveRun records a completed crawl's per-domain visited counts and
// product URLs in one transaction and returns the new run's ID.
func (s *RunStore) SaveRun(ctx context.Context, result *shopcrawl.CrawlResult, startedAt, finishedAt time.Time) (string, error) {
	if result == nil {
		return "", shopcrawl.Errorf(shopcrawl.EINVALID, "result required")
	}

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.New().String()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at) VALUES (?, ?, ?)`,
		runID,
		startedAt.UTC().Format(time.RFC3339),
		finishedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for domain, visited := range result.Visited {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_domains (run_id, domain, visited, products) VALUES (?, ?, ?, ?)`,
			runID, domain.String(), visited, len(result.ProductURLs[domain]),
		)
		if err != nil {
			return "", fmt.Errorf("insert run domain: %w", err)
		}
		for position, url := range result.ProductURLs[domain] {
			_, err = tx.ExecContext(ctx,
				`INSERT OR IGNORE INTO product_urls (run_id, domain, url, position) VALUES (?, ?, ?, ?)`,
				runID, domain.String(), url, position,
			)
			if err != nil {
				return "", fmt.Errorf("insert product url: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// FindRun retrieves a run by ID.
// Returns ENOTFOUND if the run does not exist.
func (s *RunStore) FindRun(ctx context.Context, id string) (*Run, error) {
	var run Run
	var started, finished string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, finished_at FROM runs WHERE id = ?`, id,
	).Scan(&run.ID, &started, &finished)
	if err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.ENOTFOUND, "run %q not found", id)
	}
	if run.StartedAt, err = time.Parse(time.RFC3339, started); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339, finished); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &run, nil
}

// FindRunResult reconstructs the stored CrawlResult for a run.
func (s *RunStore) FindRunResult(ctx context.Context, runID string) (*shopcrawl.CrawlResult, error) {
	result := &shopcrawl.CrawlResult{
		ProductURLs: make(map[shopcrawl.Domain][]string),
		Visited:     make(map[shopcrawl.Domain]int),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT domain, visited FROM run_domains WHERE run_id = ?`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query run domains: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var domain string
		var visited int
		if err := rows.Scan(&domain, &visited); err != nil {
			return nil, fmt.Errorf("scan run domain: %w", err)
		}
		result.Visited[shopcrawl.Domain(domain)] = visited
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("run domains: %w", err)
	}

	urlRows, err := s.db.QueryContext(ctx,
		`SELECT domain, url FROM product_urls WHERE run_id = ? ORDER BY domain, position`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query product urls: %w", err)
	}
	defer urlRows.Close()
	for urlRows.Next() {
		var domain, url string
		if err := urlRows.Scan(&domain, &url); err != nil {
			return nil, fmt.Errorf("scan product url: %w", err)
		}
		d := shopcrawl.Domain(domain)
		result.ProductURLs[d] = append(result.ProductURLs[d], url)
	}
	if err := urlRows.Err(); err != nil {
		return nil, fmt.Errorf("product urls: %w", err)
	}

	if len(result.Visited) == 0 {
		return nil, shopcrawl.Errorf(shopcrawl.ENOTFOUND, "run %q not found", runID)
	}
	return result, nil
}
