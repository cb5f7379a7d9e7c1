// internal/models/catalog.go
package models

import (
	"net/url"
	"strconv"
)

// Catalog types mirror the upstream backend's wire contract. The storefront
// only reads them; the catalog is owned elsewhere.

type Product struct {
	ID                   int64                 `json:"id"`
	Name                 string                `json:"name"`
	Slug                 string                `json:"slug"`
	Price                float64               `json:"price"`
	PriceFormatted       string                `json:"priceFormatted"`
	PriceRange           string                `json:"priceRange,omitempty"`
	Image                string                `json:"image"`
	Images               []string              `json:"images"`
	Category             string                `json:"category"`
	Description          string                `json:"description"`
	DetailedDescription  string                `json:"detailedDescription"`
	Rating               float64               `json:"rating"`
	Reviews              int64                 `json:"reviews"`
	InStock              bool                  `json:"inStock"`
	Stock                int                   `json:"stock"`
	SKU                  string                `json:"sku"`
	Tags                 []string              `json:"tags"`
	Specifications       ProductSpecifications `json:"specifications"`
	CustomizationOptions []CustomizationOption `json:"customizationOptions,omitempty"`
	RelatedProducts      []int64               `json:"relatedProducts,omitempty"`
	CreatedAt            string                `json:"createdAt"`
	UpdatedAt            string                `json:"updatedAt"`
}

type ProductSpecifications struct {
	Material string `json:"material"`
	Size     string `json:"size"`
	Weight   string `json:"weight"`
	Color    string `json:"color"`
}

type CustomizationOption struct {
	ID          int64  `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

type Category struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	ProductCount int    `json:"productCount"`
	Image        string `json:"image"`
}

type CatalogPagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

type ProductList struct {
	Products   []Product         `json:"products"`
	Pagination CatalogPagination `json:"pagination"`
}

// ProductFilters are the query parameters accepted by the upstream catalog.
type ProductFilters struct {
	Page     int
	Limit    int
	Category string
	MinPrice int64
	MaxPrice int64
	Search   string
	Sort     string
}

// Query encodes the filters as upstream query parameters, omitting zero
// values.
func (f ProductFilters) Query() url.Values {
	query := url.Values{}
	if f.Page > 0 {
		query.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit > 0 {
		query.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Category != "" {
		query.Set("category", f.Category)
	}
	if f.MinPrice > 0 {
		query.Set("minPrice", strconv.FormatInt(f.MinPrice, 10))
	}
	if f.MaxPrice > 0 {
		query.Set("maxPrice", strconv.FormatInt(f.MaxPrice, 10))
	}
	if f.Search != "" {
		query.Set("search", f.Search)
	}
	if f.Sort != "" {
		query.Set("sort", f.Sort)
	}
	return query
}
