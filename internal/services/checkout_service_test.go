// internal/services/checkout_service_test.go
package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/geo"
	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/models"
)

// fakeGateway records calls and plays back scripted responses.
type fakeGateway struct {
	mu          sync.Mutex
	createCalls int
	statusCalls int
	lastRequest *models.CreatePaymentRequest
	link        *models.PaymentLink
	createErr   error
	statuses    []models.PaymentStatus
	statusErr   error
}

func (g *fakeGateway) CreatePaymentLink(_ context.Context, req *models.CreatePaymentRequest) (*models.PaymentLink, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.createCalls++
	g.lastRequest = req
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.link, nil
}

func (g *fakeGateway) GetStatus(_ context.Context, orderCode string) (*models.PaymentState, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.statusErr != nil {
		return nil, g.statusErr
	}
	status := g.statuses[len(g.statuses)-1]
	if g.statusCalls < len(g.statuses) {
		status = g.statuses[g.statusCalls]
	}
	g.statusCalls++
	return &models.PaymentState{
		OrderCode:     orderCode,
		OrderNumber:   "ZIP-20260829-0001",
		PaymentStatus: status,
		Amount:        330000,
	}, nil
}

func (g *fakeGateway) counts() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.createCalls, g.statusCalls
}

func validForm() *CheckoutForm {
	return &CheckoutForm{
		Name:     "Nguyễn Văn A",
		Phone:    "0912345678",
		Email:    "a@example.com",
		Province: "Thành phố Hà Nội",
		District: "Quận Ba Đình",
		Address:  "12 Phố Huế",
	}
}

func newCheckoutFixture(t *testing.T, gw *fakeGateway) (*CheckoutService, *CartService) {
	t.Helper()

	geoData, err := geo.Load("")
	require.NoError(t, err)

	cfg := &config.Config{
		Checkout: config.CheckoutConfig{ShippingFee: 30000, Currency: "vnd"},
	}
	cart := NewCartService(nil, nil)
	return NewCheckoutService(nil, cfg, cart, gw, geoData, nil), cart
}

func TestSubmitEmptyCart(t *testing.T) {
	gw := &fakeGateway{}
	checkout, _ := newCheckoutFixture(t, gw)

	_, err := checkout.Submit(context.Background(), "s1", validForm())
	assert.ErrorIs(t, err, ErrEmptyCart)

	creates, _ := gw.counts()
	assert.Equal(t, 0, creates)
}

func TestSubmitMissingDistrictSkipsGateway(t *testing.T) {
	gw := &fakeGateway{}
	checkout, cart := newCheckoutFixture(t, gw)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	form := validForm()
	form.District = ""

	_, err := checkout.Submit(context.Background(), "s1", form)

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "district", failure.Fields[0].Field)

	creates, _ := gw.counts()
	assert.Equal(t, 0, creates)
}

func TestSubmitUnknownProvince(t *testing.T) {
	gw := &fakeGateway{}
	checkout, cart := newCheckoutFixture(t, gw)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	form := validForm()
	form.Province = "Atlantis"

	_, err := checkout.Submit(context.Background(), "s1", form)

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "province", failure.Fields[0].Field)
	// The message is a translation key; the handler resolves it per request.
	assert.Equal(t, i18n.KeyCheckoutUnknownProvince, failure.Fields[0].Message)
}

func TestSubmitDistrictMustBelongToProvince(t *testing.T) {
	gw := &fakeGateway{}
	checkout, cart := newCheckoutFixture(t, gw)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	form := validForm()
	form.Province = "Thành phố Đà Nẵng"
	form.District = "Quận Ba Đình"

	_, err := checkout.Submit(context.Background(), "s1", form)

	var failure *ValidationFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, "district", failure.Fields[0].Field)
	assert.Equal(t, i18n.KeyCheckoutUnknownDistrict, failure.Fields[0].Message)

	creates, _ := gw.counts()
	assert.Equal(t, 0, creates)
}

func TestSubmitBuildsPaymentRequest(t *testing.T) {
	gw := &fakeGateway{
		link: &models.PaymentLink{
			PaymentURL:  "https://pay.example.com/abc",
			OrderCode:   "123456",
			OrderNumber: "ZIP-20260829-0001",
			Amount:      330000,
		},
	}
	checkout, cart := newCheckoutFixture(t, gw)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 3, nil)

	link, err := checkout.Submit(context.Background(), "s1", validForm())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/abc", link.PaymentURL)

	req := gw.lastRequest
	require.NotNil(t, req)
	require.Len(t, req.Items, 1)
	assert.Equal(t, int64(100000), req.Items[0].Price)
	assert.Equal(t, 3, req.Items[0].Quantity)
	assert.Equal(t, int64(300000), req.TotalPrice)
	assert.Equal(t, int64(30000), req.ShippingFee)
	assert.Equal(t, int64(0), req.Discount)
	assert.Equal(t, int64(330000), req.FinalTotal)
	assert.Equal(t, "Nguyễn Văn A", req.CustomerInfo.Name)
	assert.Equal(t, "a@example.com", req.CustomerInfo.Email)
}

func TestSubmitSurfacesGatewayError(t *testing.T) {
	gatewayErr := errors.New("insufficient inventory")
	gw := &fakeGateway{createErr: gatewayErr}
	checkout, cart := newCheckoutFixture(t, gw)
	cart.AddToCart("s1", testProduct(1, "Áo thun", "100.000đ"), 1, nil)

	_, err := checkout.Submit(context.Background(), "s1", validForm())
	assert.ErrorIs(t, err, gatewayErr)
}
