// internal/handlers/order.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// GET /orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	token := c.GetString("user_token")
	if token == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	orders, err := h.orderService.List(c.Request.Context(), token, page, limit)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	utils.SuccessResponse(c, orders)
}

// GET /orders/:orderNumber
func (h *OrderHandler) GetOrder(c *gin.Context) {
	token := c.GetString("user_token")
	if token == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	orderNumber := c.Param("orderNumber")
	if orderNumber == "" {
		utils.BadRequestResponse(c, "Missing order number", nil)
		return
	}

	order, err := h.orderService.Detail(c.Request.Context(), token, orderNumber)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

type checkOrderRequest struct {
	OrderNumber string `json:"orderNumber" validate:"required"`
	Phone       string `json:"phone" validate:"required,vn_phone"`
}

// POST /orders/check
//
// Public lookup: the phone number on the order doubles as the shared
// secret.
func (h *OrderHandler) CheckOrder(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req checkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	order, err := h.orderService.Check(c.Request.Context(), req.OrderNumber, req.Phone)
	if err != nil {
		h.upstreamError(c, err)
		return
	}

	utils.SuccessResponse(c, order)
}

func (h *OrderHandler) upstreamError(c *gin.Context, err error) {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		switch upstreamErr.StatusCode {
		case 401, 403:
			utils.UnauthorizedResponse(c, "")
			return
		case 404:
			utils.NotFoundResponse(c, "order")
			return
		}
	}
	utils.BadGatewayResponse(c, "")
}
