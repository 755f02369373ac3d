package promotion

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// MemoryRepository provides an in-memory implementation of Repository for
// tests and local development.
type MemoryRepository struct {
	mu        sync.RWMutex
	offers    map[string]*models.Offer
	discounts map[string]*models.Discount
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository creates an empty in-memory promotion repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		offers:    make(map[string]*models.Offer),
		discounts: make(map[string]*models.Discount),
	}
}

// CreateOffer stores a copy of the offer under a new id.
func (r *MemoryRepository) CreateOffer(ctx context.Context, offer *models.Offer) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *offer
	stored.ID = uuid.NewString()
	stored.CreatedAt = time.Now().UTC()
	r.offers[stored.ID] = &stored
	return stored.ID, nil
}

// UpdateOffer rewrites an existing offer.
func (r *MemoryRepository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.offers[offer.ID]
	if !ok {
		return ErrNotFound
	}
	updated := *offer
	updated.CreatedAt = existing.CreatedAt
	r.offers[offer.ID] = &updated
	return nil
}

// DeleteOffer removes an offer.
func (r *MemoryRepository) DeleteOffer(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.offers[id]; !ok {
		return ErrNotFound
	}
	delete(r.offers, id)
	return nil
}

// ListOffers returns all offers, newest first.
func (r *MemoryRepository) ListOffers(ctx context.Context) ([]*models.Offer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Offer, 0, len(r.offers))
	for _, o := range r.offers {
		copied := *o
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// CreateDiscount stores a copy of the discount under a new id.
func (r *MemoryRepository) CreateDiscount(ctx context.Context, d *models.Discount) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *d
	stored.ID = uuid.NewString()
	r.discounts[stored.ID] = &stored
	return stored.ID, nil
}

// UpdateDiscount rewrites an existing discount.
func (r *MemoryRepository) UpdateDiscount(ctx context.Context, d *models.Discount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discounts[d.ID]; !ok {
		return ErrNotFound
	}
	updated := *d
	r.discounts[d.ID] = &updated
	return nil
}

// DeleteDiscount removes a discount.
func (r *MemoryRepository) DeleteDiscount(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.discounts[id]; !ok {
		return ErrNotFound
	}
	delete(r.discounts, id)
	return nil
}

// ListDiscounts returns all discounts, latest expiry first.
func (r *MemoryRepository) ListDiscounts(ctx context.Context) ([]*models.Discount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Discount, 0, len(r.discounts))
	for _, d := range r.discounts {
		copied := *d
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ValidUntil.After(out[j].ValidUntil) })
	return out, nil
}

// Counts returns the active offer and discount counts.
func (r *MemoryRepository) Counts(ctx context.Context) (*Counts, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	counts := &Counts{}
	for _, o := range r.offers {
		if o.Active {
			counts.ActiveOffers++
		}
	}
	for _, d := range r.discounts {
		if d.Active {
			counts.ActiveDiscounts++
		}
	}
	return counts, nil
}
