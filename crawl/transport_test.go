package crawl_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopcrawl/shopcrawl"
	"github.com/shopcrawl/shopcrawl/crawl"
	"github.com/shopcrawl/shopcrawl/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportSelector_Fetch(t *testing.T) {
	t.Parallel()

	configs := shopcrawl.SiteConfigTable{
		"protected.example.com": {Impersonate: true},
	}

	plain := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "plain", nil
		},
	}
	browser := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			return "browser", nil
		},
	}

	t.Run("flagged site uses the impersonating transport", func(t *testing.T) {
		t.Parallel()

		selector := &crawl.TransportSelector{Plain: plain, Impersonating: browser, Configs: configs}
		body, err := selector.Fetch(context.Background(), "https://protected.example.com/products")
		require.NoError(t, err)
		assert.Equal(t, "browser", body)
	})

	t.Run("unflagged site uses the plain transport", func(t *testing.T) {
		t.Parallel()

		selector := &crawl.TransportSelector{Plain: plain, Impersonating: browser, Configs: configs}
		body, err := selector.Fetch(context.Background(), "https://open.example.com/products")
		require.NoError(t, err)
		assert.Equal(t, "plain", body)
	})

	t.Run("flagged site falls back when no browser is available", func(t *testing.T) {
		t.Parallel()

		selector := &crawl.TransportSelector{Plain: plain, Configs: configs}
		body, err := selector.Fetch(context.Background(), "https://protected.example.com/products")
		require.NoError(t, err)
		assert.Equal(t, "plain", body)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		selector := &crawl.TransportSelector{Plain: plain, Configs: configs}
		_, err := selector.Fetch(context.Background(), "://not-a-url")
		require.Error(t, err)
		assert.Equal(t, shopcrawl.EINVALID, shopcrawl.ErrorCode(err))
	})
}

func TestTransportSelector_Close(t *testing.T) {
	t.Parallel()

	wantErr := errors.New("browser close failed")
	plain := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
	}
	browser := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) { return "", nil },
		CloseFn: func() error { return wantErr },
	}

	selector := &crawl.TransportSelector{Plain: plain, Impersonating: browser}
	assert.ErrorIs(t, selector.Close(), wantErr)
}
