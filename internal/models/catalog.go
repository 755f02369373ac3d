package models

import "fmt"

// CatalogItem is one sellable menu item. The name is the identity within the
// catalog; the price is a typed whole-currency-unit integer and the display
// label is always derived from it, never the reverse.
type CatalogItem struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	Vegetarian bool   `json:"vegetarian"`
	Category   string `json:"category,omitempty"`
	Featured   bool   `json:"featured,omitempty"`
}

// PriceLabel renders the display price for the item.
func (i CatalogItem) PriceLabel() string {
	return fmt.Sprintf("₹%d", i.Price)
}
