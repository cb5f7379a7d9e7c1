// internal/gateway/rest.go
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/upstream"
)

// RESTGateway drives the hosted payment provider through the upstream
// backend's payment endpoints. This is the default driver.
type RESTGateway struct {
	client *upstream.Client
}

func NewRESTGateway(client *upstream.Client) *RESTGateway {
	return &RESTGateway{client: client}
}

type createEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    struct {
		PaymentURL  string      `json:"paymentUrl"`
		OrderCode   json.Number `json:"orderCode"`
		OrderNumber string      `json:"orderNumber"`
		QRCode      string      `json:"qrCode"`
		Amount      int64       `json:"amount"`
	} `json:"data"`
}

type statusEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		OrderCode     json.Number          `json:"orderCode"`
		OrderNumber   string               `json:"orderNumber"`
		Status        string               `json:"status"`
		PaymentStatus models.PaymentStatus `json:"paymentStatus"`
		Amount        int64                `json:"amount"`
		PaidAt        string               `json:"paidAt"`
		TransactionID string               `json:"transactionId"`
	} `json:"data"`
}

func (g *RESTGateway) CreatePaymentLink(ctx context.Context, req *models.CreatePaymentRequest) (*models.PaymentLink, error) {
	var env createEnvelope
	if err := g.client.Post(ctx, "/payment/create", req, &env); err != nil {
		return nil, err
	}

	if !env.Success || env.Data.PaymentURL == "" {
		if env.Message != "" {
			return nil, errors.New(env.Message)
		}
		return nil, errors.New("payment gateway returned no payment link")
	}

	return &models.PaymentLink{
		PaymentURL:  env.Data.PaymentURL,
		OrderCode:   env.Data.OrderCode.String(),
		OrderNumber: env.Data.OrderNumber,
		QRCode:      env.Data.QRCode,
		Amount:      env.Data.Amount,
	}, nil
}

func (g *RESTGateway) GetStatus(ctx context.Context, orderCode string) (*models.PaymentState, error) {
	var env statusEnvelope
	if err := g.client.Get(ctx, fmt.Sprintf("/payment/status/%s", orderCode), nil, &env); err != nil {
		return nil, err
	}

	if !env.Success {
		return nil, fmt.Errorf("no payment found for order code %s", orderCode)
	}

	return &models.PaymentState{
		OrderCode:     env.Data.OrderCode.String(),
		OrderNumber:   env.Data.OrderNumber,
		Status:        env.Data.Status,
		PaymentStatus: env.Data.PaymentStatus,
		Amount:        env.Data.Amount,
		PaidAt:        env.Data.PaidAt,
		TransactionID: env.Data.TransactionID,
	}, nil
}
