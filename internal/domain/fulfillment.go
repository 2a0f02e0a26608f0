package domain

// Fulfillment statuses. SCHEDULED is the only state from which the client
// may trigger a transition (ship); everything else is display-only.
const (
	FulfillmentScheduled = "SCHEDULED"
	FulfillmentShipped   = "SHIPPED"
)

type Fulfillment struct {
	ID         int64  `json:"id"`
	OrderID    string `json:"orderId"`
	ShippingID string `json:"shippingId,omitempty"`
	Status     string `json:"status"`
}
