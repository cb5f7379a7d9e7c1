// internal/services/cart_service.go
package services

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// CartService holds the authoritative list of items each session intends to
// purchase and exposes derived totals. The in-memory state is the source of
// truth for a live session; every mutation writes the full cart through to
// the database, and storage failures are logged, never surfaced.
type CartService struct {
	db  *gorm.DB
	log logrus.FieldLogger

	mu     sync.Mutex
	carts  map[string][]models.CartItem
	loaded map[string]bool
}

// NewCartService builds a cart store. A nil db keeps carts in memory only,
// which is how isolated tests construct instances.
func NewCartService(db *gorm.DB, log logrus.FieldLogger) *CartService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CartService{
		db:     db,
		log:    log,
		carts:  make(map[string][]models.CartItem),
		loaded: make(map[string]bool),
	}
}

// AddToCart merges into an existing line when the product id and serialized
// customization both match; otherwise it appends a new line.
func (s *CartService) AddToCart(sessionID string, product models.Product, quantity int, custom *models.Customization) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(sessionID)
	key := models.CartLineKey(product.ID, custom)

	merged := false
	for i := range items {
		if items[i].Key() == key {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}

	if !merged {
		items = append(items, models.CartItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.PriceFormatted,
			Image:     product.Image,
			Category:  product.Category,
			SKU:       product.SKU,
			Quantity:  quantity,
			Custom:    custom,
		})
	}

	s.carts[sessionID] = items
	s.persist(sessionID, items)
}

// RemoveFromCart deletes every line matching the product id, regardless of
// customization. Matching by id alone can drop multiple differently
// customized lines at once; whether id is meant to be the sole removal key
// is a documented open question, so the behavior is kept as-is.
func (s *CartService) RemoveFromCart(sessionID string, productID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(sessionID)
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	s.carts[sessionID] = kept
	s.persist(sessionID, kept)
}

// UpdateQuantity sets the quantity on every line matching the product id.
// Zero or negative quantity behaves as RemoveFromCart.
func (s *CartService) UpdateQuantity(sessionID string, productID int64, quantity int) {
	if quantity <= 0 {
		s.RemoveFromCart(sessionID, productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(sessionID)
	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
		}
	}

	s.carts[sessionID] = items
	s.persist(sessionID, items)
}

// ClearCart empties the session's cart. Used after a confirmed payment.
func (s *CartService) ClearCart(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.carts[sessionID] = []models.CartItem{}
	s.loaded[sessionID] = true
	s.persist(sessionID, s.carts[sessionID])
}

// Items returns a copy of the session's cart lines in insertion order.
func (s *CartService) Items(sessionID string) []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.load(sessionID)
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out
}

// TotalItems sums quantities across all lines.
func (s *CartService) TotalItems(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.load(sessionID) {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums (unitPrice + customizationPrice) * quantity across all
// lines, where unitPrice is parsed from the formatted price string.
func (s *CartService) TotalPrice(sessionID string) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total int64
	for _, item := range s.load(sessionID) {
		price := utils.ParsePrice(item.Price)
		if item.Custom != nil {
			price += item.Custom.Price
		}
		total += price * int64(item.Quantity)
	}
	return total
}

// load rehydrates the session's cart from storage on first touch. A missing
// row means an empty cart; a corrupt row is logged and treated as empty.
// Callers must hold s.mu.
func (s *CartService) load(sessionID string) []models.CartItem {
	if s.loaded[sessionID] {
		return s.carts[sessionID]
	}
	s.loaded[sessionID] = true

	if s.db == nil {
		s.carts[sessionID] = []models.CartItem{}
		return s.carts[sessionID]
	}

	var record models.CartRecord
	err := s.db.Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.WithError(err).WithField("session_id", sessionID).Error("Failed to load cart")
		}
		s.carts[sessionID] = []models.CartItem{}
		return s.carts[sessionID]
	}

	items, err := record.Items()
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("Error loading cart")
		items = []models.CartItem{}
	}
	if items == nil {
		items = []models.CartItem{}
	}

	s.carts[sessionID] = items
	return items
}

// persist writes the full cart snapshot. Write errors never reach the
// caller; the in-memory cart stays authoritative for the session.
// Callers must hold s.mu.
func (s *CartService) persist(sessionID string, items []models.CartItem) {
	if s.db == nil {
		return
	}

	record := models.CartRecord{SessionID: sessionID}
	if err := record.SetItems(items); err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("Failed to encode cart")
		return
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		s.log.WithError(err).WithField("session_id", sessionID).Error("Failed to persist cart")
	}
}
