package order

import (
	"context"
	"testing"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

func draft(customer, phone string, orderType models.OrderType, total float64, daysAgo int) *models.DraftOrder {
	return &models.DraftOrder{
		Customer:      customer,
		Phone:         phone,
		Address:       models.PickupAddress,
		OrderType:     orderType,
		Items:         []models.OrderLine{{Name: "Chicken Biryani", Price: 250, Quantity: 1}},
		Subtotal:      total,
		GST:           0,
		Total:         total,
		PaymentMethod: models.DefaultPaymentMethod,
		Date:          time.Now().UTC().AddDate(0, 0, -daysAgo),
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	id, err := repo.Create(ctx, draft("Arun", "9876543210", models.Takeaway, 262.5, 0))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == "" {
		t.Fatal("expected a repository-assigned id")
	}

	got, err := repo.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != models.StatusPending {
		t.Errorf("initial status = %s, want pending", got.Status)
	}
	if got.Customer != "Arun" {
		t.Errorf("customer = %s, want Arun", got.Customer)
	}

	if _, err := repo.Get(ctx, "missing"); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository_ListFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	idA, _ := repo.Create(ctx, draft("Arun", "9876543210", models.Takeaway, 100, 2))
	repo.Create(ctx, draft("Bala", "9000000000", models.Delivery, 200, 1))
	repo.Create(ctx, draft("Chitra", "9111111111", models.Takeaway, 300, 0))
	repo.UpdateStatus(ctx, idA, models.StatusCompleted)

	all, err := repo.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
	// Newest first.
	if all[0].Customer != "Chitra" {
		t.Errorf("expected newest order first, got %s", all[0].Customer)
	}

	pending, _ := repo.List(ctx, Filter{Status: "pending"})
	if len(pending) != 2 {
		t.Errorf("expected 2 pending orders, got %d", len(pending))
	}

	delivery, _ := repo.List(ctx, Filter{OrderType: "delivery"})
	if len(delivery) != 1 || delivery[0].Customer != "Bala" {
		t.Errorf("unexpected delivery filter result: %+v", delivery)
	}

	byPhone, _ := repo.List(ctx, Filter{Search: "9111"})
	if len(byPhone) != 1 || byPhone[0].Customer != "Chitra" {
		t.Errorf("unexpected search result: %+v", byPhone)
	}
}

func TestMemoryRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	id, _ := repo.Create(ctx, draft("Arun", "9876543210", models.Takeaway, 100, 0))

	old, customer, err := repo.UpdateStatus(ctx, id, models.StatusPreparing)
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if old != models.StatusPending || customer != "Arun" {
		t.Errorf("got old=%s customer=%s", old, customer)
	}

	got, _ := repo.Get(ctx, id)
	if got.Status != models.StatusPreparing {
		t.Errorf("status = %s, want preparing", got.Status)
	}

	if _, _, err := repo.UpdateStatus(ctx, "missing", models.StatusReady); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRepository_Stats(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	repo.Create(ctx, draft("Arun", "9876543210", models.Takeaway, 105, 0))
	id, _ := repo.Create(ctx, draft("Bala", "9000000000", models.Delivery, 210, 0))
	repo.UpdateStatus(ctx, id, models.StatusCancelled)

	stats, err := repo.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalOrders != 2 {
		t.Errorf("total orders = %d, want 2", stats.TotalOrders)
	}
	if stats.PendingOrders != 1 {
		t.Errorf("pending orders = %d, want 1", stats.PendingOrders)
	}
	if stats.MonthlyRevenue != 105 {
		t.Errorf("monthly revenue = %f, want 105 (cancelled orders excluded)", stats.MonthlyRevenue)
	}
	if len(stats.PopularItems) == 0 || stats.PopularItems[0].Name != "Chicken Biryani" {
		t.Errorf("unexpected popular items: %+v", stats.PopularItems)
	}
}
