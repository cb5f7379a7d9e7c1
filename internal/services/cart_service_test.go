// internal/services/cart_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zipstore/zip-storefront/internal/models"
)

func testProduct(id int64, name, price string) models.Product {
	return models.Product{
		ID:             id,
		Name:           name,
		PriceFormatted: price,
		Image:          "/images/test.jpg",
		Category:       "ao-thun",
		SKU:            "SKU-001",
	}
}

func TestAddToCartMergesSameLine(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)

	items := cart.Items("s1")
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, cart.TotalItems("s1"))
}

func TestAddToCartKeepsDistinctCustomizations(t *testing.T) {
	cart := NewCartService(nil, nil)
	product := testProduct(1, "Áo thun", "100.000đ")

	cart.AddToCart("s1", product, 1, nil)
	cart.AddToCart("s1", product, 1, &models.Customization{
		Type: models.CustomizationTypePrint, Text: "ZIP", Price: 20000,
	})
	cart.AddToCart("s1", product, 1, &models.Customization{
		Type: models.CustomizationTypeEmbroidery, Text: "ZIP", Price: 50000,
	})
	// Same customization again merges instead of adding a fourth line.
	cart.AddToCart("s1", product, 2, &models.Customization{
		Type: models.CustomizationTypePrint, Text: "ZIP", Price: 20000,
	})

	items := cart.Items("s1")
	assert.Len(t, items, 3)
	assert.Equal(t, 5, cart.TotalItems("s1"))
}

func TestRemoveFromCartMatchesByProductID(t *testing.T) {
	cart := NewCartService(nil, nil)
	product := testProduct(1, "Áo thun", "100.000đ")

	cart.AddToCart("s1", product, 1, nil)
	cart.AddToCart("s1", product, 1, &models.Customization{
		Type: models.CustomizationTypePrint, Text: "ZIP", Price: 20000,
	})
	cart.AddToCart("s1", testProduct(2, "Áo sơ mi", "250.000đ"), 1, nil)

	// Removal keys on product id alone, so both id-1 lines go.
	cart.RemoveFromCart("s1", 1)

	items := cart.Items("s1")
	assert.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].ProductID)
}

func TestUpdateQuantity(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)
	cart.UpdateQuantity("s1", 1, 5)

	items := cart.Items("s1")
	assert.Equal(t, 5, items[0].Quantity)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)
	cart.UpdateQuantity("s1", 1, 0)
	assert.Empty(t, cart.Items("s1"))

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)
	cart.UpdateQuantity("s1", 1, -3)
	assert.Empty(t, cart.Items("s1"))
}

func TestTotalPrice(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 3, nil)
	assert.Equal(t, int64(300000), cart.TotalPrice("s1"))

	cart.AddToCart("s1", testProduct(2, "Áo sơ mi", "250.000đ"), 1, &models.Customization{
		Type: models.CustomizationTypePrint, Text: "ZIP", Price: 20000,
	})
	assert.Equal(t, int64(570000), cart.TotalPrice("s1"))
}

func TestTotalPriceUnparsablePriceCountsAsZero(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Liên hệ", "Liên hệ"), 2, nil)
	assert.Equal(t, int64(0), cart.TotalPrice("s1"))
}

func TestClearCartIsIdempotent(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 2, nil)
	cart.ClearCart("s1")
	cart.ClearCart("s1")

	assert.Empty(t, cart.Items("s1"))
	assert.Equal(t, 0, cart.TotalItems("s1"))
	assert.Equal(t, int64(0), cart.TotalPrice("s1"))
}

func TestCartsAreIsolatedPerSession(t *testing.T) {
	cart := NewCartService(nil, nil)

	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)
	cart.AddToCart("s2", testProduct(2, "Áo sơ mi", "250.000đ"), 2, nil)

	assert.Len(t, cart.Items("s1"), 1)
	assert.Len(t, cart.Items("s2"), 1)
	assert.Equal(t, int64(1), cart.Items("s1")[0].ProductID)
	assert.Equal(t, int64(2), cart.Items("s2")[0].ProductID)
}
