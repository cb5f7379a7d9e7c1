// internal/handlers/cart_test.go
package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// catalogStub serves a minimal product endpoint in place of the commerce
// backend.
func catalogStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/1":
			w.Write([]byte(`{
				"success": true,
				"data": {
					"id": 1,
					"name": "Áo thun",
					"priceFormatted": "100.000đ",
					"image": "/images/ao-thun.jpg",
					"category": "ao-thun",
					"sku": "SKU-001",
					"customizationOptions": [
						{"id": 1, "type": "print", "name": "In hình", "price": 20000}
					]
				}
			}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"Product not found"}`))
		}
	}))
}

func newCartRouter(t *testing.T, upstreamURL string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	client := upstream.NewClient(config.UpstreamConfig{BaseURL: upstreamURL, Timeout: 5})
	catalog := services.NewCatalogService(client, nil, 0, nil)
	cart := services.NewCartService(nil, nil)
	handler := NewCartHandler(cart, catalog)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("session_id", "test-session")
		c.Next()
	})
	r.GET("/cart", handler.GetCart)
	r.POST("/cart/items", handler.AddItem)
	r.PUT("/cart/items/:productId", handler.UpdateItem)
	r.DELETE("/cart/items/:productId", handler.RemoveItem)
	r.DELETE("/cart", handler.ClearCart)
	return r
}

func addItem(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestAddItemSnapshotsProduct(t *testing.T) {
	backend := catalogStub(t)
	defer backend.Close()
	r := newCartRouter(t, backend.URL)

	w := addItem(t, r, `{"productId": 1, "quantity": 2}`)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeCart(t, w)
	assert.Equal(t, float64(2), data["totalItems"])
	assert.Equal(t, float64(200000), data["totalPrice"])

	items := data["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "Áo thun", item["name"])
	assert.Equal(t, "100.000đ", item["price"])
}

func TestAddItemResolvesCustomizationPriceFromCatalog(t *testing.T) {
	backend := catalogStub(t)
	defer backend.Close()
	r := newCartRouter(t, backend.URL)

	// The client-sent price is ignored in favor of the catalog's option price.
	w := addItem(t, r, `{"productId": 1, "quantity": 1, "customization": {"type": "print", "text": "ZIP", "price": 1}}`)
	require.Equal(t, http.StatusOK, w.Code)

	data := decodeCart(t, w)
	assert.Equal(t, float64(120000), data["totalPrice"])
}

func TestAddItemUnknownProduct(t *testing.T) {
	backend := catalogStub(t)
	defer backend.Close()
	r := newCartRouter(t, backend.URL)

	w := addItem(t, r, `{"productId": 99, "quantity": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateAndRemoveItem(t *testing.T) {
	backend := catalogStub(t)
	defer backend.Close()
	r := newCartRouter(t, backend.URL)

	addItem(t, r, `{"productId": 1, "quantity": 1}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/cart/items/1", bytes.NewBufferString(`{"quantity": 4}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decodeCart(t, w)["totalItems"])

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/cart/items/1", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeCart(t, w)["totalItems"])
}

func TestClearCart(t *testing.T) {
	backend := catalogStub(t)
	defer backend.Close()
	r := newCartRouter(t, backend.URL)

	addItem(t, r, `{"productId": 1, "quantity": 3}`)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cart", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/cart", nil)
	r.ServeHTTP(w, req)
	data := decodeCart(t, w)
	assert.Equal(t, float64(0), data["totalItems"])
}
