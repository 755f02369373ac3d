package checkout

import (
	"github.com/gokulraj121/karikalan-restaurant/internal/cart"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// Fields holds the customer-entered checkout form values.
type Fields struct {
	CustomerName  string           `json:"customer_name"`
	Phone         string           `json:"phone"`
	Address       string           `json:"address"`
	OrderType     models.OrderType `json:"order_type"`
	PaymentMethod string           `json:"payment_method"`
}

// validate guards the Editing -> Submitting transition. On any failure the
// flow stays in Editing and no repository call is made.
func validate(fields Fields, lines []cart.Line) error {
	if len(lines) == 0 {
		return ValidationError{Field: "items", Message: "please add items to your order"}
	}
	if fields.CustomerName == "" {
		return ValidationError{Field: "customer_name", Message: "name is required"}
	}
	if fields.Phone == "" {
		return ValidationError{Field: "phone", Message: "phone number is required"}
	}
	if !models.ValidOrderType(string(fields.OrderType)) {
		return ValidationError{Field: "order_type", Message: "order type must be takeaway or delivery"}
	}
	if fields.OrderType == models.Delivery && fields.Address == "" {
		return ValidationError{Field: "address", Message: "delivery address is required"}
	}
	return nil
}
