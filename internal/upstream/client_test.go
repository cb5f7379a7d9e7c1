// internal/upstream/client_test.go
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipstore/zip-storefront/internal/config"
)

func newTestClient(baseURL string) *Client {
	return NewClient(config.UpstreamConfig{
		BaseURL: baseURL,
		APIKey:  "test-key",
		Timeout: 5,
	})
}

func TestGetDecodesResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		assert.Equal(t, "ao-thun", r.URL.Query().Get("category"))
		assert.Equal(t, "test-key", r.Header.Get("X-API-Key"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    map[string]interface{}{"total": 3},
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			Total int `json:"total"`
		} `json:"data"`
	}
	query := url.Values{}
	query.Set("category", "ao-thun")

	err := client.Get(context.Background(), "/products", query, &out)
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 3, out.Data.Total)
}

func TestGetAsForwardsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer user-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.GetAs(context.Background(), "/orders", nil, "user-token", nil)
	assert.NoError(t, err)
}

func TestErrorWithMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Voucher expired"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Post(context.Background(), "/payment/create", map[string]string{}, nil)
	require.Error(t, err)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadRequest, ue.StatusCode)
	assert.Equal(t, "Voucher expired", ue.Message)
}

func TestErrorWithErrorsArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors":["name is required","phone is invalid"]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Post(context.Background(), "/payment/create", map[string]string{}, nil)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"name is required", "phone is invalid"}, ue.Errors)
	assert.Contains(t, ue.Error(), "name is required")
}

func TestErrorWithBareStringErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"errors":"database offline"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Get(context.Background(), "/products", nil, nil)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"database offline"}, ue.Errors)
}

func TestErrorWithUnparsableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`<html>upstream down</html>`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	err := client.Get(context.Background(), "/products", nil, nil)

	var ue *Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, http.StatusBadGateway, ue.StatusCode)
	assert.Empty(t, ue.Message)
}
