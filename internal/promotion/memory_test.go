package promotion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

func TestOfferLifecycle(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	id, err := repo.CreateOffer(ctx, &models.Offer{Title: "Weekend Special", Active: true})
	if err != nil {
		t.Fatalf("create offer: %v", err)
	}

	offers, err := repo.ListOffers(ctx)
	if err != nil {
		t.Fatalf("list offers: %v", err)
	}
	if len(offers) != 1 || offers[0].ID != id {
		t.Fatalf("unexpected offers: %+v", offers)
	}

	if err := repo.UpdateOffer(ctx, &models.Offer{ID: id, Title: "Weekday Special", Active: false}); err != nil {
		t.Fatalf("update offer: %v", err)
	}
	offers, _ = repo.ListOffers(ctx)
	if offers[0].Title != "Weekday Special" || offers[0].Active {
		t.Errorf("update not applied: %+v", offers[0])
	}

	if err := repo.DeleteOffer(ctx, id); err != nil {
		t.Fatalf("delete offer: %v", err)
	}
	if err := repo.DeleteOffer(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestUpdateMissingOffer(t *testing.T) {
	repo := NewMemoryRepository()
	err := repo.UpdateOffer(context.Background(), &models.Offer{ID: "missing"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDiscountLifecycleAndCounts(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	_, err := repo.CreateDiscount(ctx, &models.Discount{
		Code:       "DIWALI20",
		Type:       models.DiscountPercentage,
		Value:      20,
		ValidUntil: time.Now().Add(30 * 24 * time.Hour),
		Active:     true,
	})
	if err != nil {
		t.Fatalf("create discount: %v", err)
	}
	inactiveID, err := repo.CreateDiscount(ctx, &models.Discount{
		Code:   "FLAT50",
		Type:   models.DiscountFixed,
		Value:  50,
		Active: false,
	})
	if err != nil {
		t.Fatalf("create discount: %v", err)
	}
	if _, err := repo.CreateOffer(ctx, &models.Offer{Title: "Combo Deal", Active: true}); err != nil {
		t.Fatalf("create offer: %v", err)
	}

	counts, err := repo.Counts(ctx)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts.ActiveOffers != 1 {
		t.Errorf("expected 1 active offer, got %d", counts.ActiveOffers)
	}
	if counts.ActiveDiscounts != 1 {
		t.Errorf("expected 1 active discount, got %d", counts.ActiveDiscounts)
	}

	if err := repo.DeleteDiscount(ctx, inactiveID); err != nil {
		t.Fatalf("delete discount: %v", err)
	}
	discounts, err := repo.ListDiscounts(ctx)
	if err != nil {
		t.Fatalf("list discounts: %v", err)
	}
	if len(discounts) != 1 || discounts[0].Code != "DIWALI20" {
		t.Fatalf("unexpected discounts: %+v", discounts)
	}
}
