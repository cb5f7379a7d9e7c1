// internal/gateway/stripe.go
package gateway

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/models"
)

// StripeGateway hosts the payment page on Stripe Checkout instead of the
// default provider. The checkout session ID doubles as the opaque order code.
type StripeGateway struct {
	config *config.Config
}

func NewStripeGateway(cfg *config.Config) *StripeGateway {
	stripe.Key = cfg.Payment.StripeSecretKey
	return &StripeGateway{config: cfg}
}

func (g *StripeGateway) CreatePaymentLink(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentLink, error) {
	currency := g.config.Checkout.Currency
	if currency == "" {
		currency = "vnd"
	}

	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items)+1)
	for _, item := range req.Items {
		unitAmount := item.Price
		name := item.Name
		if item.Customization != nil {
			unitAmount += item.Customization.Price
			name = fmt.Sprintf("%s (%s)", name, item.Customization.Type)
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(name),
				},
				// VND is a zero-decimal currency on Stripe.
				UnitAmount: stripe.Int64(unitAmount),
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	if req.ShippingFee > 0 {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String("Shipping"),
				},
				UnitAmount: stripe.Int64(req.ShippingFee),
			},
			Quantity: stripe.Int64(1),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(g.config.Payment.SuccessURL + "?orderCode={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(g.config.Payment.CancelURL + "?orderCode={CHECKOUT_SESSION_ID}"),
	}
	params.Context = ctx
	params.AddMetadata("customer_name", req.CustomerInfo.Name)
	params.AddMetadata("customer_phone", req.CustomerInfo.Phone)

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return &models.PaymentLink{
		PaymentURL:  s.URL,
		OrderCode:   s.ID,
		OrderNumber: orderNumberFromSession(s.ID),
		Amount:      s.AmountTotal,
	}, nil
}

func (g *StripeGateway) GetStatus(ctx context.Context, orderCode string) (*models.PaymentState, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(orderCode, params)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch checkout session: %w", err)
	}

	state := &models.PaymentState{
		OrderCode:   s.ID,
		OrderNumber: orderNumberFromSession(s.ID),
		Status:      string(s.Status),
		Amount:      s.AmountTotal,
	}

	switch {
	case s.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid:
		state.PaymentStatus = models.PaymentStatusCompleted
		state.PaidAt = time.Now().UTC().Format(time.RFC3339)
		if s.PaymentIntent != nil {
			state.TransactionID = s.PaymentIntent.ID
		}
	case s.Status == stripe.CheckoutSessionStatusExpired:
		state.PaymentStatus = models.PaymentStatusFailed
	default:
		state.PaymentStatus = models.PaymentStatusPending
	}

	return state, nil
}

func orderNumberFromSession(sessionID string) string {
	trimmed := strings.TrimPrefix(sessionID, "cs_")
	trimmed = strings.TrimPrefix(trimmed, "test_")
	trimmed = strings.TrimPrefix(trimmed, "live_")
	if len(trimmed) > 10 {
		trimmed = trimmed[:10]
	}
	return "ZIP-" + strings.ToUpper(trimmed)
}
