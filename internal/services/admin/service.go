// Package admin is the back-office HTTP service: the live order feed,
// status management, dashboard aggregates and promotional content.
package admin

import (
	"context"
	"fmt"

	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/messaging"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
	"github.com/gokulraj121/karikalan-restaurant/internal/order"
	"github.com/gokulraj121/karikalan-restaurant/internal/promotion"
)

// Service wires the order repository, the promotion repository and the
// status-update publisher for the back-office handlers.
type Service struct {
	repo      order.Repository
	promos    promotion.Repository
	publisher *messaging.StatusPublisher
	logger    *logger.Logger
}

// NewService creates the admin service. publisher may be nil.
func NewService(repo order.Repository, promos promotion.Repository, publisher *messaging.StatusPublisher, log *logger.Logger) *Service {
	return &Service{
		repo:      repo,
		promos:    promos,
		publisher: publisher,
		logger:    log,
	}
}

// ListOrders returns orders matching the filter, newest first.
func (s *Service) ListOrders(ctx context.Context, f order.Filter) ([]*models.PersistedOrder, error) {
	return s.repo.List(ctx, f)
}

// GetOrder returns a single order with its items.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.PersistedOrder, error) {
	return s.repo.Get(ctx, id)
}

// UpdateOrderStatus transitions an order to the given status and publishes
// the change to the notifications exchange. The publish is informational; a
// failure there never rolls back the status change.
func (s *Service) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, requestID string) (*models.PersistedOrder, error) {
	old, customer, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.logger.Info("order_status_updated",
		fmt.Sprintf("Order %s: %s -> %s", id, old, status),
		requestID, map[string]interface{}{
			"order_id":   id,
			"old_status": string(old),
			"new_status": string(status),
		})

	if s.publisher != nil {
		msg := models.NewStatusUpdateMessage(id, customer, string(old), string(status), "admin-service")
		if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
			s.logger.Warn("notification_skipped", "Status updated but notification failed", requestID, map[string]interface{}{
				"order_id": id,
			})
		}
	}

	return s.repo.Get(ctx, id)
}

// Dashboard combines the order aggregates with the active promotion counts.
type Dashboard struct {
	TotalOrders     int                 `json:"total_orders"`
	PendingOrders   int                 `json:"pending_orders"`
	MonthlyRevenue  float64             `json:"monthly_revenue"`
	PopularItems    []order.PopularItem `json:"popular_items"`
	ActiveOffers    int                 `json:"active_offers"`
	ActiveDiscounts int                 `json:"active_discounts"`
}

// GetDashboard computes the dashboard aggregates.
func (s *Service) GetDashboard(ctx context.Context) (*Dashboard, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order stats: %w", err)
	}

	dash := &Dashboard{
		TotalOrders:    stats.TotalOrders,
		PendingOrders:  stats.PendingOrders,
		MonthlyRevenue: stats.MonthlyRevenue,
		PopularItems:   stats.PopularItems,
	}

	if s.promos != nil {
		counts, err := s.promos.Counts(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count promotions: %w", err)
		}
		dash.ActiveOffers = counts.ActiveOffers
		dash.ActiveDiscounts = counts.ActiveDiscounts
	}

	return dash, nil
}

// HealthCheck reports whether the backing repository is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	_, err := s.repo.List(ctx, order.Filter{Status: string(models.StatusPending)})
	return err == nil
}
