package domain

// Order as returned by GET /api/orders. CreatedAt stays a raw string:
// the gateway sometimes omits it and older records carry values that do
// not parse, so interpretation is deferred to the display layer.
type Order struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"`
	Currency   string `json:"currency"`
	Status     Status `json:"status"`
	CreatedAt  string `json:"createdAt,omitempty"`
}

type OrderItem struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type CreateOrderRequest struct {
	CustomerID string      `json:"customerId"`
	Amount     int64       `json:"amount"`
	Currency   string      `json:"currency"`
	Items      []OrderItem `json:"items"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}
