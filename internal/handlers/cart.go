// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/i18n"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type CartHandler struct {
	cartService    *services.CartService
	catalogService *services.CatalogService
}

func NewCartHandler(cartService *services.CartService, catalogService *services.CatalogService) *CartHandler {
	return &CartHandler{
		cartService:    cartService,
		catalogService: catalogService,
	}
}

type addItemRequest struct {
	ProductID     int64                 `json:"productId" validate:"required,gt=0"`
	Quantity      int                   `json:"quantity" validate:"gte=0"`
	Customization *models.Customization `json:"customization"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartView struct {
	Items      []models.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	utils.SuccessResponse(c, h.view(sessionID))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	// Snapshot the product at add time so later catalog edits don't change
	// what the customer put in the cart.
	product, err := h.catalogService.Product(c.Request.Context(), req.ProductID)
	if err != nil {
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == 404 {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.BadGatewayResponse(c, "")
		return
	}

	if req.Customization != nil {
		req.Customization.Price = customizationPrice(product, req.Customization)
	}

	h.cartService.AddToCart(sessionID, *product, req.Quantity, req.Customization)

	utils.SuccessResponseWithMeta(c, h.view(sessionID), gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemAdded),
	})
}

// PUT /cart/items/:productId
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	h.cartService.UpdateQuantity(sessionID, productID, req.Quantity)

	utils.SuccessResponseWithMeta(c, h.view(sessionID), gin.H{
		"message": i18n.T(lang, i18n.KeyCartUpdated),
	})
}

// DELETE /cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	h.cartService.RemoveFromCart(sessionID, productID)

	utils.SuccessResponseWithMeta(c, h.view(sessionID), gin.H{
		"message": i18n.T(lang, i18n.KeyCartItemRemoved),
	})
}

// DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	sessionID, exists := utils.GetSessionIDFromContext(c)
	if !exists {
		utils.UnauthorizedResponse(c, "")
		return
	}

	h.cartService.ClearCart(sessionID)

	utils.SuccessResponseWithMeta(c, h.view(sessionID), gin.H{
		"message": i18n.T(lang, i18n.KeyCartCleared),
	})
}

func (h *CartHandler) view(sessionID string) cartView {
	return cartView{
		Items:      h.cartService.Items(sessionID),
		TotalItems: h.cartService.TotalItems(sessionID),
		TotalPrice: h.cartService.TotalPrice(sessionID),
	}
}

// customizationPrice resolves the surcharge from the product's own options;
// the client-sent price is never trusted.
func customizationPrice(product *models.Product, custom *models.Customization) int64 {
	for _, option := range product.CustomizationOptions {
		if option.Type == string(custom.Type) {
			return option.Price
		}
	}
	return 0
}
