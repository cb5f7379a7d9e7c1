// internal/services/order_service.go
package services

import (
	"context"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/upstream"
)

// OrderService reads a customer's orders from the commerce backend. List
// and Detail require the customer's bearer token, which is forwarded as-is;
// Check is the public lookup by order number and phone.
type OrderService struct {
	client *upstream.Client
	log    logrus.FieldLogger
}

func NewOrderService(client *upstream.Client, log logrus.FieldLogger) *OrderService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &OrderService{client: client, log: log}
}

// List returns a page of the authenticated customer's orders.
func (s *OrderService) List(ctx context.Context, token string, page, limit int) (*models.OrderPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}

	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var result models.OrderPage
	if err := s.client.GetAs(ctx, "/orders", query, token, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Detail returns one of the authenticated customer's orders.
func (s *OrderService) Detail(ctx context.Context, token, orderNumber string) (*models.OrderDetail, error) {
	var envelope struct {
		Success bool               `json:"success"`
		Data    models.OrderDetail `json:"data"`
	}
	if err := s.client.GetAs(ctx, "/orders/"+url.PathEscape(orderNumber), nil, token, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Check looks up an order without authentication. The phone number must
// match the one on the order.
func (s *OrderService) Check(ctx context.Context, orderNumber, phone string) (*models.OrderDetail, error) {
	query := url.Values{}
	query.Set("orderNumber", orderNumber)
	query.Set("phone", phone)

	var envelope struct {
		Success bool               `json:"success"`
		Data    models.OrderDetail `json:"data"`
	}
	if err := s.client.Get(ctx, "/orders/check", query, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
