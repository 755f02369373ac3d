package checkout

import (
	"errors"
	"fmt"

	"github.com/gokulraj121/karikalan-restaurant/internal/order"
)

// ValidationError is a local, recoverable input error. Submission is not
// attempted and no state changes.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrSubmitInProgress is returned when Submit is called while a previous
// submission is still pending.
var ErrSubmitInProgress = errors.New("a submission is already in progress")

// PersistenceError wraps a failed repository write. The cart is preserved
// and the user may resubmit.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order could not be saved: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// PermissionDenied reports whether the failure is the distinguished
// authorization class, surfaced with contact-an-administrator guidance
// rather than a retry prompt.
func (e *PersistenceError) PermissionDenied() bool {
	return errors.Is(e.Err, order.ErrPermissionDenied)
}

// UserMessage renders the notification text shown for this failure.
func (e *PersistenceError) UserMessage() string {
	if e.PermissionDenied() {
		return "You don't have permission to place orders. Please contact the administrator."
	}
	return "Error placing order. Please try again later."
}
