package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopcrawl/shopcrawl"
	shophttp "github.com/shopcrawl/shopcrawl/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// page is a body comfortably above the short-body threshold.
var page = "<html><body>" + strings.Repeat("content ", 20) + "</body></html>"

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns the body on 200", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		fetcher := shophttp.NewFetcher()
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, page, body)
	})

	t.Run("sends the user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		fetcher := shophttp.NewFetcher(shophttp.WithUserAgent("shopcrawl-test/1.0"))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "shopcrawl-test/1.0", gotUA)
	})

	t.Run("sends per-site headers", func(t *testing.T) {
		t.Parallel()

		var gotLang string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLang = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		srvURL, err := shopcrawl.NormalizeDomain(srv.URL)
		require.NoError(t, err)

		configs := shopcrawl.SiteConfigTable{
			srvURL.Host(): {Headers: map[string]string{"Accept-Language": "en-IN"}},
		}
		fetcher := shophttp.NewFetcher(shophttp.WithSiteConfigs(configs))
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "en-IN", gotLang)
	})

	t.Run("classifies status codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name     string
			status   int
			wantCode string
		}{
			{"forbidden", http.StatusForbidden, shopcrawl.EFORBIDDEN},
			{"rate limited", http.StatusTooManyRequests, shopcrawl.ERATELIMITED},
			{"not found", http.StatusNotFound, shopcrawl.EUNAVAILABLE},
			{"server error", http.StatusInternalServerError, shopcrawl.EUNAVAILABLE},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer srv.Close()

				fetcher := shophttp.NewFetcher()
				defer fetcher.Close()

				_, err := fetcher.Fetch(context.Background(), srv.URL)
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, shopcrawl.ErrorCode(err))
			})
		}
	})

	t.Run("rejects short bodies", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>blocked</html>"))
		}))
		defer srv.Close()

		fetcher := shophttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, shopcrawl.ESHORTBODY, shopcrawl.ErrorCode(err))
	})

	t.Run("short body threshold is configurable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>tiny</html>"))
		}))
		defer srv.Close()

		fetcher := shophttp.NewFetcher(shophttp.WithMinBodyLength(1))
		defer fetcher.Close()

		body, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html>tiny</html>", body)
	})

	t.Run("classifies timeouts", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte(page))
		}))
		defer srv.Close()

		fetcher := shophttp.NewFetcher(shophttp.WithTimeout(20 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), srv.URL)
		require.Error(t, err)
		assert.Equal(t, shopcrawl.ETIMEOUT, shopcrawl.ErrorCode(err))
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		fetcher := shophttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1]:namedport")
		require.Error(t, err)
		assert.Equal(t, shopcrawl.EINVALID, shopcrawl.ErrorCode(err))
	})
}
