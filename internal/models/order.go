// internal/models/order.go
package models

// Order types mirror the upstream backend's order contract.

type OrderSummary struct {
	ID           int64           `json:"id"`
	OrderNumber  string          `json:"orderNumber"`
	Status       string          `json:"status"`
	TotalPayment int64           `json:"totalPayment"`
	Items        []OrderLineItem `json:"items"`
	CreatedAt    string          `json:"createdAt"`
}

type OrderLineItem struct {
	ProductID     int64          `json:"productId"`
	Name          string         `json:"name"`
	Price         int64          `json:"price,omitempty"`
	Quantity      int            `json:"quantity"`
	Subtotal      int64          `json:"subtotal,omitempty"`
	Customization *Customization `json:"customization,omitempty"`
}

type ShippingAddress struct {
	Address  string `json:"address"`
	District string `json:"district"`
	Province string `json:"province"`
}

type OrderDetail struct {
	ID            int64           `json:"id"`
	OrderNumber   string          `json:"orderNumber"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	Items         []OrderLineItem `json:"items"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone"`
	CustomerEmail string          `json:"customerEmail"`
	Shipping      ShippingAddress `json:"shippingAddress"`
	Note          string          `json:"note,omitempty"`
	Subtotal      int64           `json:"subtotal"`
	ShippingFee   int64           `json:"shippingFee"`
	Discount      int64           `json:"discount"`
	TotalPayment  int64           `json:"totalPayment"`
	TransactionID string          `json:"transactionId,omitempty"`
	PaidAt        string          `json:"paidAt,omitempty"`
	CreatedAt     string          `json:"createdAt"`
}

type OrderPage struct {
	Orders     []OrderSummary `json:"orders"`
	Pagination OrderPageMeta  `json:"pagination"`
}

type OrderPageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}
