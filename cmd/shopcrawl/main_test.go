package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopcrawl/shopcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	t.Run("no arguments", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), nil, &stdout, &stderr)
		require.Error(t, err)
	})

	t.Run("missing site config file", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		err := NewMain().Run(context.Background(), []string{
			"example.com",
			"--site-config", filepath.Join(t.TempDir(), "nope.yaml"),
		}, &stdout, &stderr)
		require.Error(t, err)
		assert.Equal(t, shopcrawl.ENOTFOUND, shopcrawl.ErrorCode(err))
	})
}

func TestWriteResults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "product_urls.json")

	result := &shopcrawl.CrawlResult{
		ProductURLs: map[shopcrawl.Domain][]string{
			"https://a.example.com": {
				"https://a.example.com/red-dress/p/1",
				"https://a.example.com/blue-dress/p/2",
			},
		},
		Visited: map[shopcrawl.Domain]int{
			"https://a.example.com": 25,
			"https://b.example.com": 4,
		},
	}

	require.NoError(t, writeResults(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var urls map[string][]string
	require.NoError(t, json.Unmarshal(data, &urls))
	assert.Len(t, urls["https://a.example.com"], 2)
	// Domains without products still appear, with an empty list.
	assert.NotNil(t, urls["https://b.example.com"])
	assert.Empty(t, urls["https://b.example.com"])

	data, err = os.ReadFile(filepath.Join(dir, "product_urls_stats.json"))
	require.NoError(t, err)
	var stats crawlStats
	require.NoError(t, json.Unmarshal(data, &stats))
	assert.ElementsMatch(t, []string{"https://a.example.com", "https://b.example.com"}, stats.Domains)
	assert.Equal(t, 2, stats.TotalProductURLs)
	assert.Equal(t, 2, stats.ProductURLsPerDomain["https://a.example.com"])
	assert.Equal(t, 25, stats.PagesCrawledPerDomain["https://a.example.com"])
	assert.Equal(t, 4, stats.PagesCrawledPerDomain["https://b.example.com"])
}

func TestStatsPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "product_urls_stats.json", statsPath("product_urls.json"))
	assert.Equal(t, "out/results_stats.json", statsPath("out/results.json"))
}
