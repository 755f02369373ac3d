package models

import "time"

// Offer is a promotional banner managed from the back-office.
type Offer struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// DiscountType distinguishes percentage discounts from fixed amounts.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is an admin-managed discount code. Discounts are records only;
// nothing applies them to a cart.
type Discount struct {
	ID          string       `json:"id"`
	Code        string       `json:"code"`
	Type        DiscountType `json:"type"`
	Value       float64      `json:"value"`
	MaxDiscount float64      `json:"maxDiscount"`
	ValidUntil  time.Time    `json:"validUntil"`
	Description string       `json:"description"`
	Active      bool         `json:"active"`
}
