// internal/handlers/product.go
package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/services"
	"github.com/zipstore/zip-storefront/internal/upstream"
	"github.com/zipstore/zip-storefront/internal/utils"
)

type ProductHandler struct {
	catalogService *services.CatalogService
}

func NewProductHandler(catalogService *services.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// GET /products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := productFilters(c)

	list, err := h.catalogService.Products(c.Request.Context(), filters)
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}

	utils.SuccessResponse(c, list)
}

// GET /products/:productId
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.Product(c.Request.Context(), productID)
	if err != nil {
		var upstreamErr *upstream.Error
		if errors.As(err, &upstreamErr) && upstreamErr.StatusCode == 404 {
			utils.NotFoundResponse(c, "product")
			return
		}
		utils.BadGatewayResponse(c, "")
		return
	}

	utils.SuccessResponse(c, product)
}

// GET /products/:productId/related
func (h *ProductHandler) GetRelatedProducts(c *gin.Context) {
	productID, ok := parseProductID(c)
	if !ok {
		return
	}

	product, err := h.catalogService.Product(c.Request.Context(), productID)
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}

	related, err := h.catalogService.FeaturedProducts(c.Request.Context(), product.Category, 4)
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}

	// Don't recommend the product to itself.
	filtered := make([]models.Product, 0, len(related))
	for _, p := range related {
		if p.ID != productID {
			filtered = append(filtered, p)
		}
	}

	utils.SuccessResponse(c, filtered)
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.Categories(c.Request.Context())
	if err != nil {
		utils.BadGatewayResponse(c, "")
		return
	}

	utils.SuccessResponse(c, categories)
}

func productFilters(c *gin.Context) models.ProductFilters {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	minPrice, _ := strconv.ParseInt(c.Query("minPrice"), 10, 64)
	maxPrice, _ := strconv.ParseInt(c.Query("maxPrice"), 10, 64)

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 48 {
		limit = 12
	}

	return models.ProductFilters{
		Page:     page,
		Limit:    limit,
		Category: c.Query("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
	}
}
