// internal/models/payment.go
package models

// Payment wire types shared by the gateway drivers and the checkout flow.

type PaymentItem struct {
	ProductID     int64          `json:"productId"`
	Name          string         `json:"name"`
	Price         int64          `json:"price"`
	Quantity      int            `json:"quantity"`
	Customization *Customization `json:"customization"`
}

type CustomerInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Province string `json:"province"`
	District string `json:"district"`
	Address  string `json:"address"`
}

// CreatePaymentRequest is the assembled order payload sent to the
// payment-initiation endpoint.
type CreatePaymentRequest struct {
	Items        []PaymentItem `json:"items"`
	CustomerInfo CustomerInfo  `json:"customerInfo"`
	Note         string        `json:"note"`
	VoucherCode  string        `json:"voucherCode,omitempty"`
	TotalPrice   int64         `json:"totalPrice"`
	ShippingFee  int64         `json:"shippingFee"`
	Discount     int64         `json:"discount"`
	FinalTotal   int64         `json:"finalTotal"`
}

// PaymentLink is the successful payment-initiation result: a hosted payment
// page URL plus the opaque pending-order reference used for status tracking.
type PaymentLink struct {
	PaymentURL  string `json:"paymentUrl"`
	OrderCode   string `json:"orderCode"`
	OrderNumber string `json:"orderNumber"`
	QRCode      string `json:"qrCode,omitempty"`
	Amount      int64  `json:"amount"`
}

// PaymentState is one observation from the order-status endpoint.
type PaymentState struct {
	OrderCode     string        `json:"orderCode"`
	OrderNumber   string        `json:"orderNumber"`
	Status        string        `json:"status"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	Amount        int64         `json:"amount"`
	PaidAt        string        `json:"paidAt,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
}
