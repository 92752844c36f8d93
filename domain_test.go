package shopcrawl_test

import (
	"testing"

	"github.com/shopcrawl/shopcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDomain(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want shopcrawl.Domain
	}{
		{"bare host gets https", "shop.example.com", "https://shop.example.com"},
		{"trailing slash stripped", "https://shop.example.com/", "https://shop.example.com"},
		{"http scheme preserved", "http://shop.example.com", "http://shop.example.com"},
		{"path dropped by trailing slash trim only", "https://shop.example.com", "https://shop.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := shopcrawl.NormalizeDomain(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeDomain_Empty(t *testing.T) {
	t.Parallel()

	_, err := shopcrawl.NormalizeDomain("")
	assert.Equal(t, shopcrawl.EINVALID, shopcrawl.ErrorCode(err))
}

func TestOrigin(t *testing.T) {
	t.Parallel()

	origin, err := shopcrawl.Origin("https://shop.example.com/women/dress/p/123?ref=home#reviews")
	require.NoError(t, err)
	assert.Equal(t, shopcrawl.Domain("https://shop.example.com"), origin)
}

func TestOrigin_Relative(t *testing.T) {
	t.Parallel()

	_, err := shopcrawl.Origin("/women/dress")
	assert.Equal(t, shopcrawl.EINVALID, shopcrawl.ErrorCode(err))
}

func TestDomain_Contains(t *testing.T) {
	t.Parallel()

	d := shopcrawl.Domain("https://shop.example.com")

	assert.True(t, d.Contains("https://shop.example.com/products/1"))
	assert.False(t, d.Contains("https://other.example.com/products/1"), "different host")
	assert.False(t, d.Contains("http://shop.example.com/products/1"), "different scheme")
	assert.False(t, d.Contains("not a url"))
}

func TestSiteConfigTable_Lookup(t *testing.T) {
	t.Parallel()

	table := shopcrawl.SiteConfigTable{
		"shop.example.com": {Impersonate: true},
	}

	cfg := table.Lookup("https://shop.example.com")
	require.NotNil(t, cfg)
	assert.True(t, cfg.Impersonate)

	assert.Nil(t, table.Lookup("https://other.example.com"), "absent entry means defaults")
	assert.Nil(t, shopcrawl.SiteConfigTable(nil).Lookup("https://shop.example.com"))
}

func TestSiteConfigTable_Merge(t *testing.T) {
	t.Parallel()

	table := shopcrawl.SiteConfigTable{
		"a.example.com": {Impersonate: true},
	}
	table.Merge(shopcrawl.SiteConfigTable{
		"a.example.com": {Impersonate: false},
		"b.example.com": {},
	})

	assert.False(t, table["a.example.com"].Impersonate, "merge replaces whole entries")
	assert.Contains(t, table, "b.example.com")
}

func TestDefaultSiteConfigs(t *testing.T) {
	t.Parallel()

	table := shopcrawl.DefaultSiteConfigs()

	nykaa := table.Lookup("https://www.nykaafashion.com")
	require.NotNil(t, nykaa)
	assert.True(t, nykaa.Impersonate)
	require.NotNil(t, nykaa.Enrichment)
	assert.NotEmpty(t, nykaa.Enrichment.ProductEndpoints)

	cliq := table.Lookup("https://www.tatacliq.com")
	require.NotNil(t, cliq)
	assert.False(t, cliq.Impersonate)
}
