// internal/gateway/rest_test.go
package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/upstream"
)

func newRESTGateway(baseURL string) *RESTGateway {
	return NewRESTGateway(upstream.NewClient(config.UpstreamConfig{
		BaseURL: baseURL,
		Timeout: 5,
	}))
}

func paymentRequest() *models.CreatePaymentRequest {
	return &models.CreatePaymentRequest{
		Items: []models.PaymentItem{
			{ProductID: 1, Name: "Áo thun", Price: 100000, Quantity: 3},
		},
		CustomerInfo: models.CustomerInfo{Name: "Nguyễn Văn A", Phone: "0912345678"},
		TotalPrice:   300000,
		ShippingFee:  30000,
		FinalTotal:   330000,
	}
}

func TestCreatePaymentLink(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/payment/create", r.URL.Path)

		var req models.CreatePaymentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(330000), req.FinalTotal)

		// orderCode arrives as a JSON number from this provider.
		w.Write([]byte(`{
			"success": true,
			"data": {
				"paymentUrl": "https://pay.example.com/abc",
				"orderCode": 123456,
				"orderNumber": "ZIP-20260829-0001",
				"qrCode": "00020101021238",
				"amount": 330000
			}
		}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	link, err := gw.CreatePaymentLink(context.Background(), paymentRequest())
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/abc", link.PaymentURL)
	assert.Equal(t, "123456", link.OrderCode)
	assert.Equal(t, "ZIP-20260829-0001", link.OrderNumber)
	assert.Equal(t, int64(330000), link.Amount)
}

func TestCreatePaymentLinkFailureSurfacesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "message": "Sản phẩm đã hết hàng"}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	_, err := gw.CreatePaymentLink(context.Background(), paymentRequest())
	require.Error(t, err)
	assert.Equal(t, "Sản phẩm đã hết hàng", err.Error())
}

func TestCreatePaymentLinkSuccessWithoutURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {}}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	_, err := gw.CreatePaymentLink(context.Background(), paymentRequest())
	assert.Error(t, err)
}

func TestGetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/payment/status/123456", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {
				"orderCode": 123456,
				"orderNumber": "ZIP-20260829-0001",
				"status": "confirmed",
				"paymentStatus": "COMPLETED",
				"amount": 330000,
				"paidAt": "2026-08-29T10:00:00Z",
				"transactionId": "txn_1"
			}
		}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	state, err := gw.GetStatus(context.Background(), "123456")
	require.NoError(t, err)

	assert.Equal(t, "123456", state.OrderCode)
	assert.Equal(t, models.PaymentStatusCompleted, state.PaymentStatus)
	assert.True(t, state.PaymentStatus.Terminal())
	assert.Equal(t, "2026-08-29T10:00:00Z", state.PaidAt)
}

func TestGetStatusPendingIsNotTerminal(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": {"orderCode": 123456, "paymentStatus": "PENDING"}}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	state, err := gw.GetStatus(context.Background(), "123456")
	require.NoError(t, err)
	assert.False(t, state.PaymentStatus.Terminal())
}

func TestGetStatusUnknownOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false}`))
	}))
	defer server.Close()

	gw := newRESTGateway(server.URL)
	_, err := gw.GetStatus(context.Background(), "999999")
	assert.Error(t, err)
}
