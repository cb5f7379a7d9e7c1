// internal/gateway/gateway.go
package gateway

import (
	"context"

	"github.com/zipstore/zip-storefront/internal/models"
)

// Gateway abstracts the hosted payment provider: it turns an assembled order
// payload into a hosted payment page URL plus an opaque order code, and
// reports the payment status for that code. The provider is authoritative;
// this service only observes.
type Gateway interface {
	CreatePaymentLink(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentLink, error)
	GetStatus(ctx context.Context, orderCode string) (*models.PaymentState, error)
}
