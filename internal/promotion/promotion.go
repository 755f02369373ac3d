// Package promotion manages the back-office promotional content: offers
// shown on the site and discount code records.
package promotion

import (
	"context"
	"errors"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// ErrNotFound is returned when the referenced offer or discount does not exist.
var ErrNotFound = errors.New("promotion not found")

// Counts summarizes the active promotional content for the dashboard.
type Counts struct {
	ActiveOffers    int `json:"active_offers"`
	ActiveDiscounts int `json:"active_discounts"`
}

// Repository defines persistence for offers and discounts.
type Repository interface {
	CreateOffer(ctx context.Context, offer *models.Offer) (string, error)
	UpdateOffer(ctx context.Context, offer *models.Offer) error
	DeleteOffer(ctx context.Context, id string) error
	ListOffers(ctx context.Context) ([]*models.Offer, error)

	CreateDiscount(ctx context.Context, discount *models.Discount) (string, error)
	UpdateDiscount(ctx context.Context, discount *models.Discount) error
	DeleteDiscount(ctx context.Context, id string) error
	ListDiscounts(ctx context.Context) ([]*models.Discount, error)

	Counts(ctx context.Context) (*Counts, error)
}
