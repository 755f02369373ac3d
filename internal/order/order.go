// Package order defines the order repository contract: the durable store of
// submitted orders and their lifecycle status.
package order

import (
	"context"
	"errors"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// ErrNotFound indicates the requested order does not exist.
var ErrNotFound = errors.New("order not found")

// ErrPermissionDenied indicates the store rejected the write for
// authorization reasons. Callers surface it with contact-an-administrator
// guidance instead of a retry prompt.
var ErrPermissionDenied = errors.New("permission denied")

// Filter narrows List results. Empty fields match everything. Search
// matches against order id, customer name and phone.
type Filter struct {
	Status    string
	OrderType string
	Search    string
}

// PopularItem is one entry in the most-ordered-items ranking.
type PopularItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Stats holds the order-side dashboard aggregates.
type Stats struct {
	TotalOrders    int           `json:"totalOrders"`
	PendingOrders  int           `json:"pendingOrders"`
	MonthlyRevenue float64       `json:"revenueMonth"`
	PopularItems   []PopularItem `json:"popularItems"`
}

// Repository defines behavior for persisting orders. Create must be a
// durable write that returns the repository-assigned identifier; failures
// propagate to the caller, never silently. Orders are never deleted.
type Repository interface {
	Create(ctx context.Context, draft *models.DraftOrder) (string, error)
	Get(ctx context.Context, id string) (*models.PersistedOrder, error)
	List(ctx context.Context, f Filter) ([]*models.PersistedOrder, error)
	UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (old models.OrderStatus, customer string, err error)
	Stats(ctx context.Context) (*Stats, error)
}
