// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

// AdminService backs the admin console: local accounts and sign-in,
// dashboard stats, and the catalog/order management that proxies to the
// commerce backend with the service API key.
type AdminService struct {
	db     *gorm.DB
	config *config.Config
	client *upstream.Client
	log    logrus.FieldLogger
}

func NewAdminService(db *gorm.DB, cfg *config.Config, client *upstream.Client, log logrus.FieldLogger) *AdminService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &AdminService{
		db:     db,
		config: cfg,
		client: client,
		log:    log,
	}
}

// Login verifies the admin's password and issues a console token.
func (s *AdminService) Login(username, password string) (string, *models.AdminUser, error) {
	var admin models.AdminUser
	err := s.db.Where("username = ? OR email = ?", username, username).First(&admin).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !admin.CheckPassword(password) {
		return "", nil, ErrInvalidCredentials
	}

	now := time.Now()
	admin.LastLoginAt = &now
	if err := s.db.Model(&admin).Update("last_login_at", now).Error; err != nil {
		s.log.WithError(err).WithField("admin_id", admin.ID).Warn("Failed to record last login")
	}

	token, err := utils.GenerateAdminToken(admin.ID, admin.Username, s.config.Auth.AdminTokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, &admin, nil
}

// DashboardStats combines local inquiry and payment figures with
// best-effort sales stats from the commerce backend.
func (s *AdminService) DashboardStats(ctx context.Context, contacts *ContactService) (map[string]interface{}, error) {
	stats := make(map[string]interface{})

	contactCounts, err := contacts.CountByStatus()
	if err != nil {
		return nil, err
	}
	stats["contacts"] = contactCounts

	var pendingPayments int64
	err = s.db.Model(&models.PendingOrder{}).
		Where("status IN ?", []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusProcessing}).
		Count(&pendingPayments).Error
	if err != nil {
		return nil, err
	}
	stats["pending_payments"] = pendingPayments

	var failedPayments int64
	err = s.db.Model(&models.PendingOrder{}).
		Where("status NOT IN ?", []models.PaymentStatus{models.PaymentStatusPending, models.PaymentStatusProcessing, models.PaymentStatusCompleted}).
		Count(&failedPayments).Error
	if err != nil {
		return nil, err
	}
	stats["failed_payments"] = failedPayments

	// Sales figures live upstream; the dashboard still renders without them.
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/stats", nil, &envelope); err != nil {
		s.log.WithError(err).Warn("Failed to load upstream sales stats")
	} else {
		stats["sales"] = envelope.Data
	}

	return stats, nil
}

// ProductForm is the admin create/update payload, forwarded upstream.
type ProductForm struct {
	Name                 string                       `json:"name" validate:"required,min=2,max=200"`
	Price                float64                      `json:"price" validate:"required,gt=0"`
	Category             string                       `json:"category" validate:"required"`
	Description          string                       `json:"description"`
	DetailedDescription  string                       `json:"detailedDescription"`
	Image                string                       `json:"image"`
	Images               []string                     `json:"images"`
	SKU                  string                       `json:"sku"`
	Stock                int64                        `json:"stock" validate:"gte=0"`
	InStock              bool                         `json:"inStock"`
	Tags                 []string                     `json:"tags"`
	CustomizationOptions []models.CustomizationOption `json:"customizationOptions"`
}

// ListProducts pages the full catalog, including out-of-stock items the
// public listing hides.
func (s *AdminService) ListProducts(ctx context.Context, params utils.PaginationParams) (*models.ProductList, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if params.Search != "" {
		query.Set("search", params.Search)
	}
	if params.Category != "" {
		query.Set("category", params.Category)
	}

	var envelope struct {
		Success bool               `json:"success"`
		Data    models.ProductList `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/products", query, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (s *AdminService) CreateProduct(ctx context.Context, form *ProductForm) (*models.Product, error) {
	var envelope struct {
		Success bool           `json:"success"`
		Data    models.Product `json:"data"`
	}
	if err := s.client.Post(ctx, "/admin/products", form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (s *AdminService) UpdateProduct(ctx context.Context, id int64, form *ProductForm) (*models.Product, error) {
	var envelope struct {
		Success bool           `json:"success"`
		Data    models.Product `json:"data"`
	}
	if err := s.client.Put(ctx, fmt.Sprintf("/admin/products/%d", id), form, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (s *AdminService) DeleteProduct(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, fmt.Sprintf("/admin/products/%d", id))
}

// ListOrders pages all customer orders from the commerce backend.
func (s *AdminService) ListOrders(ctx context.Context, params utils.PaginationParams) (*models.OrderPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if params.Status != "" {
		query.Set("status", params.Status)
	}
	if params.Search != "" {
		query.Set("search", params.Search)
	}

	var result models.OrderPage
	if err := s.client.Get(ctx, "/admin/orders", query, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (s *AdminService) OrderDetail(ctx context.Context, orderNumber string) (*models.OrderDetail, error) {
	var envelope struct {
		Success bool               `json:"success"`
		Data    models.OrderDetail `json:"data"`
	}
	if err := s.client.Get(ctx, "/admin/orders/"+url.PathEscape(orderNumber), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderNumber string, status models.OrderStatus) (*models.OrderDetail, error) {
	body := map[string]interface{}{"status": status}

	var envelope struct {
		Success bool               `json:"success"`
		Data    models.OrderDetail `json:"data"`
	}
	if err := s.client.Put(ctx, "/admin/orders/"+url.PathEscape(orderNumber), body, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// AuditLogs pages the local admin activity trail.
func (s *AdminService) AuditLogs(params utils.PaginationParams) ([]models.AuditLog, int64, error) {
	query := s.db.Model(&models.AuditLog{})
	if params.Search != "" {
		query = query.Where("action ILIKE ?", "%"+params.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = utils.ApplySort(query, params, []string{"created_at", "action"})
	query = utils.ApplyPagination(query, params)

	var logs []models.AuditLog
	if err := query.Find(&logs).Error; err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
