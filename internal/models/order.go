package models

import "time"

// OrderType represents how the customer receives the order
type OrderType string

const (
	Takeaway OrderType = "takeaway"
	Delivery OrderType = "delivery"
)

// PickupAddress is the address sentinel stored for takeaway orders.
const PickupAddress = "Pickup"

// OrderStatus represents the lifecycle status of a persisted order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidOrderType reports whether s names a known order type.
func ValidOrderType(s string) bool {
	switch OrderType(s) {
	case Takeaway, Delivery:
		return true
	}
	return false
}

// ValidOrderStatus reports whether s names a known order status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case StatusPending, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DefaultPaymentMethod is used when the customer does not pick one.
const DefaultPaymentMethod = "cash"

// Location holds a best-effort geolocation fix for delivery orders.
// Coordinates are kept as strings, matching the persisted record shape.
type Location struct {
	Lat string `json:"lat"`
	Lng string `json:"lng"`
}

// OrderLine is one ordered item: a snapshot of a cart line at submission
// time. Unit prices are whole currency units.
type OrderLine struct {
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Quantity int    `json:"quantity"`
}

// DraftOrder is the immutable computed snapshot produced at submission time,
// prior to persistence confirmation. Subtotal, GST and Total are rounded to
// two decimal places exactly once, when the draft is built.
type DraftOrder struct {
	Customer      string      `json:"customer"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	OrderType     OrderType   `json:"orderType"`
	Location      *Location   `json:"location,omitempty"`
	Items         []OrderLine `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	GST           float64     `json:"gst"`
	Total         float64     `json:"total"`
	PaymentMethod string      `json:"paymentMethod"`
	Date          time.Time   `json:"date"`
}

// PersistedOrder is a DraftOrder after a successful write, carrying the
// repository-assigned identifier and a mutable status.
type PersistedOrder struct {
	ID     string      `json:"id"`
	Status OrderStatus `json:"status"`
	DraftOrder
}

// StatusUpdateMessage is published to the notifications fanout exchange
// whenever an order status changes.
type StatusUpdateMessage struct {
	OrderID   string    `json:"order_id"`
	Customer  string    `json:"customer"`
	OldStatus string    `json:"old_status"`
	NewStatus string    `json:"new_status"`
	ChangedBy string    `json:"changed_by"`
	Timestamp time.Time `json:"timestamp"`
}

// NewStatusUpdateMessage builds a StatusUpdateMessage for an order transition.
func NewStatusUpdateMessage(orderID, customer, oldStatus, newStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:   orderID,
		Customer:  customer,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedBy: changedBy,
		Timestamp: time.Now().UTC(),
	}
}
