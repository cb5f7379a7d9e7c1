// internal/services/checkout_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/gateway"
	"github.com/zipstore/zip-storefront/internal/geo"
	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// ErrEmptyCart is returned when checkout is submitted with no cart lines.
var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm is the shipping and contact information collected at checkout.
type CheckoutForm struct {
	Name        string `json:"name" validate:"required"`
	Phone       string `json:"phone" validate:"required,vn_phone"`
	Email       string `json:"email" validate:"omitempty,email"`
	Province    string `json:"province" validate:"required"`
	District    string `json:"district" validate:"required"`
	Address     string `json:"address" validate:"required"`
	Note        string `json:"note"`
	VoucherCode string `json:"voucherCode"`
}

// ValidationFailure carries per-field errors from checkout validation and is
// rendered as a 400 with details by the handler.
type ValidationFailure struct {
	Fields []utils.ValidationError
}

func (v *ValidationFailure) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", v.Fields[0].Field)
}

// CheckoutService validates checkout submissions, assembles the payment
// request from the session's cart and hands it to the configured gateway.
type CheckoutService struct {
	db      *gorm.DB
	config  *config.Config
	cart    *CartService
	gateway gateway.Gateway
	geo     *geo.Dataset
	log     logrus.FieldLogger
}

func NewCheckoutService(db *gorm.DB, cfg *config.Config, cart *CartService, gw gateway.Gateway, geoData *geo.Dataset, log logrus.FieldLogger) *CheckoutService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CheckoutService{
		db:      db,
		config:  cfg,
		cart:    cart,
		gateway: gw,
		geo:     geoData,
		log:     log,
	}
}

// Submit validates the form, builds the payment request and creates a
// payment link. On success the order is recorded as the session's pending
// order so an interrupted flow can be resumed. Validation failures return
// before any gateway call is made.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string, form *CheckoutForm) (*models.PaymentLink, error) {
	items := s.cart.Items(sessionID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	if failure := s.validate(form); failure != nil {
		return nil, failure
	}

	req := s.buildRequest(sessionID, items, form)

	link, err := s.gateway.CreatePaymentLink(ctx, req)
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("Failed to create payment link")
		return nil, err
	}

	s.recordPending(sessionID, items, form, link)
	return link, nil
}

// PendingOrder returns the session's stored pending order, if any.
func (s *CheckoutService) PendingOrder(sessionID string) (*models.PendingOrder, error) {
	var pending models.PendingOrder
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at DESC").
		First(&pending).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pending, nil
}

func (s *CheckoutService) validate(form *CheckoutForm) *ValidationFailure {
	if err := utils.ValidateStruct(form); err != nil {
		return &ValidationFailure{Fields: utils.GetValidationErrors(err)}
	}

	// Geo failures carry a translation key; the handler resolves it for the
	// request's language.
	if !s.geo.HasProvince(form.Province) {
		return &ValidationFailure{Fields: []utils.ValidationError{
			{Field: "province", Message: i18n.KeyCheckoutUnknownProvince},
		}}
	}
	if !s.geo.HasDistrict(form.Province, form.District) {
		return &ValidationFailure{Fields: []utils.ValidationError{
			{Field: "district", Message: i18n.KeyCheckoutUnknownDistrict},
		}}
	}
	return nil
}

func (s *CheckoutService) buildRequest(sessionID string, items []models.CartItem, form *CheckoutForm) *models.CreatePaymentRequest {
	paymentItems := make([]models.PaymentItem, 0, len(items))
	for _, item := range items {
		paymentItems = append(paymentItems, models.PaymentItem{
			ProductID:     item.ProductID,
			Name:          item.Name,
			Price:         utils.ParsePrice(item.Price),
			Quantity:      item.Quantity,
			Customization: item.Custom,
		})
	}

	totalPrice := s.cart.TotalPrice(sessionID)
	shippingFee := s.config.Checkout.ShippingFee
	var discount int64

	return &models.CreatePaymentRequest{
		Items: paymentItems,
		CustomerInfo: models.CustomerInfo{
			Name:     form.Name,
			Email:    form.Email,
			Phone:    form.Phone,
			Province: form.Province,
			District: form.District,
			Address:  form.Address,
		},
		Note:        form.Note,
		VoucherCode: form.VoucherCode,
		TotalPrice:  totalPrice,
		ShippingFee: shippingFee,
		Discount:    discount,
		FinalTotal:  totalPrice + shippingFee - discount,
	}
}

// recordPending stores the payment reference for resume. The payment link
// already exists at this point, so a storage failure is logged and the link
// is still returned to the caller.
func (s *CheckoutService) recordPending(sessionID string, items []models.CartItem, form *CheckoutForm, link *models.PaymentLink) {
	if s.db == nil {
		return
	}

	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}

	pending := models.PendingOrder{
		SessionID:     sessionID,
		OrderCode:     link.OrderCode,
		OrderNumber:   link.OrderNumber,
		CustomerEmail: form.Email,
		Amount:        link.Amount,
		ItemNames:     names,
		Status:        models.PaymentStatusPending,
	}
	if err := s.db.Create(&pending).Error; err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"session_id": sessionID,
			"order_code": link.OrderCode,
		}).Error("Failed to record pending order")
	}
}
