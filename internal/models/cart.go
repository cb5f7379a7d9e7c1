// internal/models/cart.go
package models

import (
	"encoding/json"
	"fmt"
)

// Customization is an optional paid modification attached to a cart line.
type Customization struct {
	Type  CustomizationType `json:"type"`
	Text  string            `json:"text,omitempty"`
	Price int64             `json:"price"`
}

// CartItem is one purchasable selection held in the cart: a product snapshot
// plus quantity and optional customization. The product fields are copied from
// the catalog record at add time; Price keeps the formatted display string
// exactly as the catalog returned it.
type CartItem struct {
	ProductID int64          `json:"productId"`
	Name      string         `json:"name"`
	Price     string         `json:"price"`
	Image     string         `json:"image"`
	Category  string         `json:"category,omitempty"`
	SKU       string         `json:"sku,omitempty"`
	Quantity  int            `json:"quantity"`
	Custom    *Customization `json:"customization,omitempty"`
}

// Key returns the line identity: two entries merge only when both the product
// id and the serialized customization match.
func (i CartItem) Key() string {
	return CartLineKey(i.ProductID, i.Custom)
}

func CartLineKey(productID int64, custom *Customization) string {
	if custom == nil {
		return fmt.Sprintf("%d", productID)
	}
	raw, _ := json.Marshal(custom)
	return fmt.Sprintf("%d|%s", productID, raw)
}

// CartRecord is the durable per-session snapshot of the cart. The full item
// list is written on every mutation; last write wins across sessions sharing
// a key.
type CartRecord struct {
	BaseModel
	SessionID string `json:"session_id" gorm:"size:64;uniqueIndex;not null"`
	Payload   string `json:"payload" gorm:"type:jsonb;not null;default:'[]'"`
}

// Items decodes the stored payload. A corrupt payload is an error for the
// caller to swallow; the cart is then treated as empty.
func (r *CartRecord) Items() ([]CartItem, error) {
	var items []CartItem
	if r.Payload == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(r.Payload), &items); err != nil {
		return nil, fmt.Errorf("corrupt cart payload: %w", err)
	}
	return items, nil
}

func (r *CartRecord) SetItems(items []CartItem) error {
	if items == nil {
		items = []CartItem{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart payload: %w", err)
	}
	r.Payload = string(raw)
	return nil
}
