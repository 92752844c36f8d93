package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopcrawl/shopcrawl"
)

var _ shopcrawl.PageInspector = (*Inspector)(nil)

// productIndicators are tokens whose presence in page markup signals
// a product page: product-ID data attributes, add-to-cart controls,
// price blocks, review blocks, and size/color selectors.
var productIndicators = []string{
	// Product ID attributes.
	"data-product-id",
	"product-id",
	"productId",
	"data-pid",
	"data-sku",
	"sku-id",
	"skuId",
	"item-id",
	"itemId",
	"data-item-id",
	"variant-id",
	"variantId",

	// Add to cart controls.
	"add-to-cart",
	"add_to_cart",
	"addToCart",
	"add-to-bag",
	"add_to_bag",
	"addToBag",
	"buy-now",
	"buy_now",
	"buyNow",
	"add-to-wishlist",
	"addToWishlist",

	// Product detail blocks.
	"product-details",
	"product_details",
	"productDetails",
	"product-description",
	"productDescription",
	"product-title",
	"product_title",
	"productTitle",
	"item-details",
	"itemDetails",

	// Price blocks.
	"product-price",
	"product_price",
	"productPrice",
	"current-price",
	"currentPrice",
	"sale-price",
	"salePrice",

	// Review blocks.
	"product-reviews",
	"productReviews",
	"customer-reviews",
	"customerReviews",

	// Size/color selectors.
	"size-selector",
	"sizeSelector",
	"color-selector",
	"colorSelector",

	// Storefront-specific purchase controls.
	"buyNowButton",
	"addToBagButton",
	"pincode-check",
	"delivery-options",
	"emi-options",
}

const (
	priceSelectors = ".price, .product-price, .product_price, .current-price, .current_price"
	cartSelectors  = "button[class*=\"cart\"], button[class*=\"buy\"], [class*=\"add-to-cart\"], [class*=\"addToCart\"]"
)

// Inspector scans page content for product-page evidence.
type Inspector struct{}

// NewInspector creates a new Inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Inspect counts distinct product indicator tokens in the raw markup
// and checks the parsed document for schema.org Product typing,
// price-display elements, and add-to-cart-style controls.
func (i *Inspector) Inspect(html string) (*shopcrawl.PageSignals, error) {
	signals := &shopcrawl.PageSignals{}

	for _, indicator := range productIndicators {
		if strings.Contains(html, indicator) {
			signals.Indicators++
		}
	}

	signals.SchemaProduct = strings.Contains(html, `itemtype="http://schema.org/Product"`) ||
		strings.Contains(html, `itemtype="https://schema.org/Product"`) ||
		strings.Contains(html, `"@type":"Product"`) ||
		strings.Contains(html, `"@type": "Product"`)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, shopcrawl.Errorf(shopcrawl.EINVALID, "failed to parse HTML: %v", err)
	}

	signals.HasPrice = doc.Find(priceSelectors).Length() > 0
	signals.HasCartControl = doc.Find(cartSelectors).Length() > 0

	return signals, nil
}
