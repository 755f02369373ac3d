package order

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// MemoryRepository provides an in-memory implementation of Repository. It
// backs tests and local development without PostgreSQL.
type MemoryRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.PersistedOrder

	// FailWith, when set, makes Create return this error. Used to
	// simulate persistence faults.
	FailWith error
}

// NewMemoryRepository creates an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{orders: make(map[string]*models.PersistedOrder)}
}

// Create stores a copy of the draft under a new id.
func (r *MemoryRepository) Create(ctx context.Context, draft *models.DraftOrder) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.FailWith != nil {
		return "", r.FailWith
	}

	id := uuid.NewString()
	stored := &models.PersistedOrder{
		ID:         id,
		Status:     models.StatusPending,
		DraftOrder: *draft,
	}
	stored.Items = append([]models.OrderLine(nil), draft.Items...)
	r.orders[id] = stored
	return id, nil
}

// Get retrieves an order by id.
func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.PersistedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *o
	return &out, nil
}

// List returns matching orders, newest first.
func (r *MemoryRepository) List(ctx context.Context, f Filter) ([]*models.PersistedOrder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*models.PersistedOrder
	for _, o := range r.orders {
		if f.Status != "" && string(o.Status) != f.Status {
			continue
		}
		if f.OrderType != "" && string(o.OrderType) != f.OrderType {
			continue
		}
		if f.Search != "" && !matchesSearch(o, f.Search) {
			continue
		}
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// UpdateStatus sets a new status and returns the previous one.
func (r *MemoryRepository) UpdateStatus(ctx context.Context, id string, status models.OrderStatus) (models.OrderStatus, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return "", "", ErrNotFound
	}
	old := o.Status
	o.Status = status
	return old, o.Customer, nil
}

// Stats computes aggregates over the stored orders.
func (r *MemoryRepository) Stats(ctx context.Context) (*Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &Stats{TotalOrders: len(r.orders)}
	monthStart := time.Now().UTC()
	monthStart = time.Date(monthStart.Year(), monthStart.Month(), 1, 0, 0, 0, 0, time.UTC)

	counts := make(map[string]int)
	for _, o := range r.orders {
		if o.Status == models.StatusPending {
			stats.PendingOrders++
		}
		if !o.Date.Before(monthStart) && o.Status != models.StatusCancelled {
			stats.MonthlyRevenue += o.Total
		}
		for _, item := range o.Items {
			counts[item.Name] += item.Quantity
		}
	}

	for name, count := range counts {
		stats.PopularItems = append(stats.PopularItems, PopularItem{Name: name, Count: count})
	}
	sort.Slice(stats.PopularItems, func(i, j int) bool {
		if stats.PopularItems[i].Count != stats.PopularItems[j].Count {
			return stats.PopularItems[i].Count > stats.PopularItems[j].Count
		}
		return stats.PopularItems[i].Name < stats.PopularItems[j].Name
	})
	if len(stats.PopularItems) > 5 {
		stats.PopularItems = stats.PopularItems[:5]
	}
	return stats, nil
}

func matchesSearch(o *models.PersistedOrder, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(o.ID), q) ||
		strings.Contains(strings.ToLower(o.Customer), q) ||
		strings.Contains(o.Phone, q)
}
