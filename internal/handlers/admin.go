// internal/handlers/admin.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type AdminHandler struct {
	adminService   *services.AdminService
	contactService *services.ContactService
	storageService *services.StorageService
}

func NewAdminHandler(adminService *services.AdminService, contactService *services.ContactService, storageService *services.StorageService) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		contactService: contactService,
		storageService: storageService,
	}
}

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// POST /admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	token, admin, err := h.adminService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.UnauthorizedResponse(c, i18n.T(lang, i18n.KeyAuthInvalidCredentials))
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, gin.H{
		"token": token,
		"admin": gin.H{
			"id":       admin.ID,
			"username": admin.Username,
			"email":    admin.Email,
		},
	}, gin.H{
		"message": i18n.T(lang, i18n.KeyAdminLoginSuccess),
	})
}

// GET /admin/dashboard/stats
func (h *AdminHandler) GetDashboardStats(c *gin.Context) {
	stats, err := h.adminService.DashboardStats(c.Request.Context(), h.contactService)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, stats)
}

// GET /admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	list, err := h.adminService.ListProducts(c.Request.Context(), params)
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}
	utils.SuccessResponse(c, list)
}

// POST /admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var form services.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&form)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.adminService.CreateProduct(c.Request.Context(), &form)
	if err != nil {
		h.upstreamError(c, err, "product")
		return
	}

	utils.CreatedResponse(c, gin.H{
		"product": product,
		"message": i18n.T(lang, i18n.KeyProductCreated),
	})
}

// PUT /admin/products/:productId
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var form services.ProductForm
	if err := c.ShouldBindJSON(&form); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&form)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	product, err := h.adminService.UpdateProduct(c.Request.Context(), productID, &form)
	if err != nil {
		h.upstreamError(c, err, "product")
		return
	}

	utils.SuccessResponseWithMeta(c, product, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
	})
}

// DELETE /admin/products/:productId
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	if err := h.adminService.DeleteProduct(c.Request.Context(), productID); err != nil {
		h.upstreamError(c, err, "product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /admin/products/images
//
// Accepts multipart image uploads and returns the stored URLs for use in a
// product create or update.
func (h *AdminHandler) UploadProductImages(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), "no files provided")
		return
	}

	options := services.ProductImageOptions()
	results := make([]*services.UploadResult, 0, len(files))
	for _, header := range files {
		file, err := header.Open()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}

		result, err := h.storageService.UploadFile(file, header, options)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
			return
		}
		results = append(results, result)
	}

	utils.SuccessResponseWithMeta(c, gin.H{"uploads": results}, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
	})
}

// GET /admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orders, err := h.adminService.ListOrders(c.Request.Context(), params)
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}
	utils.SuccessResponse(c, orders)
}

// GET /admin/orders/:orderNumber
func (h *AdminHandler) GetOrder(c *gin.Context) {
	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		utils.BadRequestResponse(c, "Missing order number", nil)
		return
	}

	order, err := h.adminService.OrderDetail(c.Request.Context(), orderNumber)
	if err != nil {
		h.upstreamError(c, err, "order")
		return
	}
	utils.SuccessResponse(c, order)
}

type updateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// PUT /admin/orders/:orderNumber/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		utils.BadRequestResponse(c, "Missing order number", nil)
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	order, err := h.adminService.UpdateOrderStatus(c.Request.Context(), orderNumber, req.Status)
	if err != nil {
		h.upstreamError(c, err, "order")
		return
	}

	utils.SuccessResponseWithMeta(c, order, gin.H{
		"message": i18n.T(lang, i18n.KeyOrderUpdated),
	})
}

// GET /admin/contacts
func (h *AdminHandler) ListContacts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	inquiries, total, err := h.contactService.List(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(inquiries, total, params))
}

// GET /admin/contacts/:id
func (h *AdminHandler) GetContact(c *gin.Context) {
	id, ok := parseContactID(c)
	if !ok {
		return
	}

	inquiry, err := h.contactService.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.NotFoundResponse(c, "contact")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}
	utils.SuccessResponse(c, inquiry)
}

type updateContactStatusRequest struct {
	Status models.ContactStatus `json:"status" validate:"required,oneof=new read replied"`
}

// PUT /admin/contacts/:id/status
func (h *AdminHandler) UpdateContactStatus(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseContactID(c)
	if !ok {
		return
	}

	var req updateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	inquiry, err := h.contactService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.NotFoundResponse(c, "contact")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponseWithMeta(c, inquiry, gin.H{
		"message": i18n.T(lang, i18n.KeyContactUpdated),
	})
}

// DELETE /admin/contacts/:id
func (h *AdminHandler) DeleteContact(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	id, ok := parseContactID(c)
	if !ok {
		return
	}

	if err := h.contactService.Delete(id); err != nil {
		if errors.Is(err, services.ErrContactNotFound) {
			utils.NotFoundResponse(c, "contact")
			return
		}
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyContactDeleted),
	})
}

// GET /admin/audit-logs
func (h *AdminHandler) ListAuditLogs(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	logs, total, err := h.adminService.AuditLogs(params)
	if err != nil {
		utils.InternalErrorResponse(c, "")
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(logs, total, params))
}

func parseContactID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid contact ID", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *AdminHandler) upstreamError(c *gin.Context, err error, resource string) {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.StatusCode {
		case 400:
			utils.BadRequestResponse(c, upstreamErr.Message, upstreamErr.Errors)
			return
		case 404:
			utils.NotFoundResponse(c, resource)
			return
		}
	}
	utils.BadGatewayResponse(c, "")
}
