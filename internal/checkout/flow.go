// Package checkout turns the current cart snapshot plus customer-entered
// fields into a validated, persisted order and retains the confirmation.
package checkout

import (
	"context"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/cart"
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// State is the checkout flow state.
type State string

const (
	// StateEditing: cart and fields are mutable; submit is guarded.
	StateEditing State = "editing"
	// StateSubmitting: totals are frozen and a persistence write is in
	// flight; further submits are rejected.
	StateSubmitting State = "submitting"
	// StateConfirmed: terminal until an explicit reset.
	StateConfirmed State = "confirmed"
)

// OrderCreator is the slice of the order repository the flow needs.
type OrderCreator interface {
	Create(ctx context.Context, draft *models.DraftOrder) (string, error)
}

// Locator resolves a best-effort location fix for delivery orders. Failure
// never blocks submission.
type Locator interface {
	Locate(ctx context.Context) (*models.Location, error)
}

// LocatorFunc adapts a function to the Locator interface.
type LocatorFunc func(ctx context.Context) (*models.Location, error)

// Locate calls f.
func (f LocatorFunc) Locate(ctx context.Context) (*models.Location, error) { return f(ctx) }

// Confirmation is what the flow retains after a successful submission: the
// frozen order snapshot and the repository-assigned identifier.
type Confirmation struct {
	OrderID string            `json:"order_id"`
	Order   models.DraftOrder `json:"order"`
	Notice  string            `json:"notice,omitempty"`
}

// Flow drives one session's checkout: Editing -> Submitting -> Confirmed,
// with Confirmed -> Editing via Reset. Like the cart store it owns, a Flow
// is single-writer; the owning session serializes calls.
type Flow struct {
	cart    *cart.Store
	repo    OrderCreator
	locator Locator
	logger  *logger.Logger

	state        State
	confirmation *Confirmation
}

// NewFlow creates a checkout flow over the session's cart store. locator
// may be nil when no location source is available.
func NewFlow(store *cart.Store, repo OrderCreator, locator Locator, log *logger.Logger) *Flow {
	return &Flow{
		cart:    store,
		repo:    repo,
		locator: locator,
		logger:  log,
		state:   StateEditing,
	}
}

// State returns the current flow state.
func (f *Flow) State() State {
	return f.state
}

// Cart returns the cart store the flow operates on.
func (f *Flow) Cart() *cart.Store {
	return f.cart
}

// Confirmation returns the retained confirmation, or nil outside Confirmed.
func (f *Flow) Confirmation() *Confirmation {
	return f.confirmation
}

// Submit validates the fields against the current cart and attempts to
// persist the order. The totals are computed from the snapshot taken here;
// later cart mutations cannot affect an in-flight submission. On success the
// cart is cleared and the flow is Confirmed; on failure the cart is
// untouched and the flow returns to Editing.
func (f *Flow) Submit(ctx context.Context, fields Fields) (*Confirmation, error) {
	return f.SubmitWith(ctx, fields, f.locator)
}

// SubmitWith is Submit with a request-scoped locator in place of the one the
// flow was constructed with. A nil locator skips the lookup.
func (f *Flow) SubmitWith(ctx context.Context, fields Fields, locator Locator) (*Confirmation, error) {
	requestID := logger.GenerateRequestID()

	if f.state == StateSubmitting {
		return nil, ErrSubmitInProgress
	}

	snapshot := f.cart.Lines()
	if err := validate(fields, snapshot); err != nil {
		f.logger.Debug("validation_failed", "Order submission rejected", requestID, map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	f.state = StateSubmitting
	totals := ComputeTotals(snapshot)

	var notice string
	var location *models.Location
	if fields.OrderType == models.Delivery && locator != nil {
		loc, err := locator.Locate(ctx)
		if err != nil {
			// Informational only; the order proceeds without coordinates.
			notice = "Could not determine your location. The order will proceed without coordinates."
			f.logger.Warn("geolocation_failed", "Best-effort location lookup failed", requestID, map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			location = loc
		}
	}

	draft := buildDraft(fields, snapshot, totals, location)

	orderID, err := f.repo.Create(ctx, draft)
	if err != nil {
		f.state = StateEditing
		perr := &PersistenceError{Err: err}
		f.logger.Error("order_creation_failed", "Failed to persist order", requestID, err, map[string]interface{}{
			"customer":          fields.CustomerName,
			"order_type":        string(fields.OrderType),
			"permission_denied": perr.PermissionDenied(),
		})
		return nil, perr
	}

	f.confirmation = &Confirmation{
		OrderID: orderID,
		Order:   *draft,
		Notice:  notice,
	}
	f.cart.Clear()
	f.state = StateConfirmed

	f.logger.Info("order_created", "Order persisted", requestID, map[string]interface{}{
		"order_id": orderID,
		"total":    draft.Total,
	})
	return f.confirmation, nil
}

// Reset discards the retained confirmation and returns the flow to Editing
// with an empty cart and default fields.
func (f *Flow) Reset() {
	f.confirmation = nil
	f.state = StateEditing
	f.cart.Clear()
}

// buildDraft freezes the submission into an immutable draft order.
func buildDraft(fields Fields, snapshot []cart.Line, totals Totals, location *models.Location) *models.DraftOrder {
	address := fields.Address
	if fields.OrderType == models.Takeaway {
		address = models.PickupAddress
	}

	payment := fields.PaymentMethod
	if payment == "" {
		payment = models.DefaultPaymentMethod
	}

	items := make([]models.OrderLine, 0, len(snapshot))
	for _, l := range snapshot {
		items = append(items, models.OrderLine{Name: l.Name, Price: l.UnitPrice, Quantity: l.Quantity})
	}

	return &models.DraftOrder{
		Customer:      fields.CustomerName,
		Phone:         fields.Phone,
		Address:       address,
		OrderType:     fields.OrderType,
		Location:      location,
		Items:         items,
		Subtotal:      totals.Subtotal,
		GST:           totals.GST,
		Total:         totals.Total,
		PaymentMethod: payment,
		Date:          time.Now().UTC(),
	}
}
