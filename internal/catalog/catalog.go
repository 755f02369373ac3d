// Package catalog holds the static menu: the read-only list of sellable
// items supplied to the cart. Items are loaded once at startup.
package catalog

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// Catalog is an immutable collection of menu items keyed by derived item id.
type Catalog struct {
	items []models.CatalogItem
	byID  map[string]models.CatalogItem
}

// Filter narrows List results. Zero values match everything.
type Filter struct {
	Category   string
	Vegetarian *bool
}

// New builds a catalog from the given items, deriving each item id from its
// name. Later duplicates of a name are dropped.
func New(items []models.CatalogItem) *Catalog {
	c := &Catalog{byID: make(map[string]models.CatalogItem, len(items))}
	for _, item := range items {
		item.ID = ItemID(item.Name)
		if _, exists := c.byID[item.ID]; exists {
			continue
		}
		c.byID[item.ID] = item
		c.items = append(c.items, item)
	}
	return c
}

// Default returns the catalog built from the standard menu.
func Default(log *logger.Logger) *Catalog {
	return New(defaultMenu(log))
}

// ItemID derives the deterministic item identifier from an item name:
// lowercase, alphanumerics kept, runs of anything else collapsed to "-".
func ItemID(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}

// Get returns the item with the given id.
func (c *Catalog) Get(id string) (models.CatalogItem, bool) {
	item, ok := c.byID[id]
	return item, ok
}

// List returns the items matching the filter, in menu order.
func (c *Catalog) List(f Filter) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(c.items))
	for _, item := range c.items {
		if f.Category != "" && !strings.EqualFold(item.Category, f.Category) {
			continue
		}
		if f.Vegetarian != nil && item.Vegetarian != *f.Vegetarian {
			continue
		}
		out = append(out, item)
	}
	return out
}

// Categories returns the distinct categories in menu order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range c.items {
		if item.Category == "" || seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

// Len returns the number of items in the catalog.
func (c *Catalog) Len() int {
	return len(c.items)
}

// ParsePrice extracts a whole-currency-unit price from a formatted label
// such as "₹110". A label with no digits parses to 0; callers treat that as
// a data error to flag, not a crash.
func ParsePrice(label string) (int, bool) {
	var digits strings.Builder
	for _, r := range label {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
