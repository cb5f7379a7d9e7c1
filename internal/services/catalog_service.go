// internal/services/catalog_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/upstream"
)

// CatalogService reads products and categories from the commerce backend,
// with a read-through Redis cache in front. Cache failures fall back to a
// direct upstream read.
type CatalogService struct {
	client *upstream.Client
	cache  *redis.Client
	ttl    time.Duration
	log    logrus.FieldLogger
}

// NewCatalogService builds a catalog reader. cache may be nil, which
// disables caching entirely.
func NewCatalogService(client *upstream.Client, cache *redis.Client, ttl time.Duration, log logrus.FieldLogger) *CatalogService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogService{
		client: client,
		cache:  cache,
		ttl:    ttl,
		log:    log,
	}
}

type productListEnvelope struct {
	Success bool               `json:"success"`
	Data    models.ProductList `json:"data"`
}

type productEnvelope struct {
	Success bool           `json:"success"`
	Data    models.Product `json:"data"`
}

type categoriesEnvelope struct {
	Success bool              `json:"success"`
	Data    []models.Category `json:"data"`
}

// Products lists products matching the filters.
func (s *CatalogService) Products(ctx context.Context, filters models.ProductFilters) (*models.ProductList, error) {
	key := s.listCacheKey(filters)

	var list models.ProductList
	if s.fromCache(ctx, key, &list) {
		return &list, nil
	}

	var envelope productListEnvelope
	if err := s.client.Get(ctx, "/products", filters.Query(), &envelope); err != nil {
		return nil, err
	}

	s.toCache(ctx, key, &envelope.Data)
	return &envelope.Data, nil
}

// Product fetches a single product by id.
func (s *CatalogService) Product(ctx context.Context, id int64) (*models.Product, error) {
	key := fmt.Sprintf("catalog:product:%d", id)

	var product models.Product
	if s.fromCache(ctx, key, &product) {
		return &product, nil
	}

	var envelope productEnvelope
	if err := s.client.Get(ctx, fmt.Sprintf("/products/%d", id), nil, &envelope); err != nil {
		return nil, err
	}

	s.toCache(ctx, key, &envelope.Data)
	return &envelope.Data, nil
}

// Categories lists the product categories.
func (s *CatalogService) Categories(ctx context.Context) ([]models.Category, error) {
	const key = "catalog:categories"

	var categories []models.Category
	if s.fromCache(ctx, key, &categories) {
		return categories, nil
	}

	var envelope categoriesEnvelope
	if err := s.client.Get(ctx, "/categories", nil, &envelope); err != nil {
		return nil, err
	}

	s.toCache(ctx, key, envelope.Data)
	return envelope.Data, nil
}

// FeaturedProducts returns the first page of products in a category, used
// for the related-products strip on product pages.
func (s *CatalogService) FeaturedProducts(ctx context.Context, category string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 4
	}
	list, err := s.Products(ctx, models.ProductFilters{
		Category: category,
		Limit:    limit,
		Sort:     "rating",
	})
	if err != nil {
		return nil, err
	}
	return list.Products, nil
}

func (s *CatalogService) listCacheKey(filters models.ProductFilters) string {
	return "catalog:products:" + filters.Query().Encode()
}

func (s *CatalogService) fromCache(ctx context.Context, key string, out interface{}) bool {
	if s.cache == nil {
		return false
	}

	payload, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.log.WithError(err).WithField("key", key).Warn("Catalog cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(payload, out); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Corrupt catalog cache entry")
		return false
	}
	return true
}

func (s *CatalogService) toCache(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("Catalog cache write failed")
	}
}
