// internal/models/session.go
package models

import (
	"time"

	"github.com/lib/pq"
)

// PendingOrder tracks a payment-initiation result for a session so a return
// visit after the hosted-gateway redirect can resume status tracking. The row
// is deleted once the payment reaches a completed state; on failure it stays
// so the user can retry checkout.
type PendingOrder struct {
	BaseModel
	SessionID   string `json:"session_id" gorm:"size:64;index;not null"`
	OrderCode   string `json:"order_code" gorm:"size:64;uniqueIndex;not null"`
	OrderNumber string `json:"order_number" gorm:"size:64"`
	// CustomerEmail is the checkout form's email, kept so the confirmation
	// mail can be sent once the payment completes.
	CustomerEmail string         `json:"customer_email,omitempty" gorm:"size:255"`
	Amount        int64          `json:"amount"`
	ItemNames     pq.StringArray `json:"item_names" gorm:"type:text[]"`
	Status        PaymentStatus  `json:"status" gorm:"type:varchar(20);default:'PENDING';index"`
	Reason        string         `json:"reason,omitempty" gorm:"size:255"`
	PaidAt        *time.Time     `json:"paid_at"`
}

// LoginRedirect stores the URL a signed-out visitor should return to after
// completing the hosted login flow.
type LoginRedirect struct {
	BaseModel
	SessionID string `json:"session_id" gorm:"size:64;uniqueIndex;not null"`
	Target    string `json:"target" gorm:"size:2048;not null"`
}
