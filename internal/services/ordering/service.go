// Package ordering is the customer-facing HTTP service: menu browsing,
// session carts and checkout submission.
package ordering

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/cart"
	"github.com/gokulraj121/karikalan-restaurant/internal/catalog"
	"github.com/gokulraj121/karikalan-restaurant/internal/checkout"
	"github.com/gokulraj121/karikalan-restaurant/internal/geo"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/messaging"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
	"github.com/gokulraj121/karikalan-restaurant/internal/order"
)

const sessionTTL = 2 * time.Hour

// Service wires the catalog, per-session checkout flows, the order
// repository and the status-update publisher together.
type Service struct {
	catalog   *catalog.Catalog
	repo      order.Repository
	publisher *messaging.StatusPublisher
	locator   *geo.Client
	logger    *logger.Logger
	sessions  *sessionManager
}

// NewService creates the ordering service. publisher and locator may be nil;
// both are best-effort collaborators.
func NewService(cat *catalog.Catalog, repo order.Repository, publisher *messaging.StatusPublisher, locator *geo.Client, log *logger.Logger) *Service {
	s := &Service{
		catalog:   cat,
		repo:      repo,
		publisher: publisher,
		locator:   locator,
		logger:    log,
	}
	s.sessions = newSessionManager(s.newFlow, sessionTTL)
	return s
}

// Start runs background session maintenance until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.sessions.sweepLoop(ctx.Done())
}

func (s *Service) newFlow() *checkout.Flow {
	return checkout.NewFlow(cart.NewStore(), s.repo, nil, s.logger)
}

// locatorFor binds the best-effort geolocation lookup to one request's
// client address.
func (s *Service) locatorFor(r *http.Request) checkout.Locator {
	if s.locator == nil {
		return nil
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return checkout.LocatorFunc(func(ctx context.Context) (*models.Location, error) {
		return s.locator.LocateIP(ctx, ip)
	})
}

// Submit runs the session's checkout flow and, on success, publishes the
// initial pending status. The notification is informational; a publish
// failure never fails the submission.
func (s *Service) Submit(ctx context.Context, flow *checkout.Flow, fields checkout.Fields, locator checkout.Locator) (*checkout.Confirmation, error) {
	conf, err := flow.SubmitWith(ctx, fields, locator)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		msg := models.NewStatusUpdateMessage(conf.OrderID, conf.Order.Customer, "", string(models.StatusPending), "order-service")
		if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
			s.logger.Warn("notification_skipped", "Order stored but status notification failed", "", map[string]interface{}{
				"order_id": conf.OrderID,
			})
		}
	}
	return conf, nil
}

// HealthCheck reports whether the backing repository is reachable.
func (s *Service) HealthCheck(ctx context.Context) bool {
	_, err := s.repo.List(ctx, order.Filter{Status: string(models.StatusPending)})
	return err == nil
}
