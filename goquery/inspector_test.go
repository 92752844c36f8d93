package goquery_test

import (
	"testing"

	"github.com/shopcrawl/shopcrawl/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspector_Inspect(t *testing.T) {
	t.Parallel()

	t.Run("counts distinct indicator tokens", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<div data-pid="123" data-pid="456"></div>
			<button class="add-to-cart">Add to cart</button>
			<div class="product-price">₹1,299</div>
		</body></html>`

		inspector := goquery.NewInspector()
		signals, err := inspector.Inspect(html)
		require.NoError(t, err)

		// Repeated tokens count once.
		assert.Equal(t, 3, signals.Indicators)
	})

	t.Run("detects schema.org product markup", func(t *testing.T) {
		t.Parallel()

		inspector := goquery.NewInspector()

		tests := []struct {
			name string
			html string
			want bool
		}{
			{
				name: "microdata",
				html: `<div itemscope itemtype="https://schema.org/Product"></div>`,
				want: true,
			},
			{
				name: "microdata http",
				html: `<div itemscope itemtype="http://schema.org/Product"></div>`,
				want: true,
			},
			{
				name: "json-ld",
				html: `<script type="application/ld+json">{"@type":"Product","name":"Dress"}</script>`,
				want: true,
			},
			{
				name: "json-ld spaced",
				html: `<script type="application/ld+json">{"@type": "Product"}</script>`,
				want: true,
			},
			{
				name: "other type",
				html: `<script type="application/ld+json">{"@type":"BreadcrumbList"}</script>`,
				want: false,
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				signals, err := inspector.Inspect(tt.html)
				require.NoError(t, err)
				assert.Equal(t, tt.want, signals.SchemaProduct)
			})
		}
	})

	t.Run("detects price and cart elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
			<span class="price">$49.99</span>
			<button class="btn btn-cart">Add</button>
		</body></html>`

		inspector := goquery.NewInspector()
		signals, err := inspector.Inspect(html)
		require.NoError(t, err)

		assert.True(t, signals.HasPrice)
		assert.True(t, signals.HasCartControl)
	})

	t.Run("plain page has no signals", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><h1>About us</h1><p>We sell things.</p></body></html>`

		inspector := goquery.NewInspector()
		signals, err := inspector.Inspect(html)
		require.NoError(t, err)

		assert.Zero(t, signals.Indicators)
		assert.False(t, signals.SchemaProduct)
		assert.False(t, signals.HasPrice)
		assert.False(t, signals.HasCartControl)
	})
}
