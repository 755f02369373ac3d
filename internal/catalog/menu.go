package catalog

import (
	"github.com/gokulraj121/karikalan-restaurant/internal/logger"
	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

// menuEntry is the raw menu source row. Prices arrive as formatted labels
// from the menu content; they are parsed to typed integers exactly once, at
// startup, and never derived from a label again after that.
type menuEntry struct {
	name       string
	price      string
	vegetarian bool
	category   string
	featured   bool
}

var menuEntries = []menuEntry{
	// Soups
	{name: "Sweet Corn Soup", price: "₹110", vegetarian: true, category: "Soups"},
	{name: "Hot & Sour Soup (Veg)", price: "₹110", vegetarian: true, category: "Soups"},
	{name: "Manchow Soup (Veg)", price: "₹110", vegetarian: true, category: "Soups"},
	{name: "Hot & Sour Chicken Soup", price: "₹140", vegetarian: false, category: "Soups"},
	{name: "Clear Chicken Soup", price: "₹140", vegetarian: false, category: "Soups"},
	{name: "Hot & Sour Mutton Soup", price: "₹170", vegetarian: false, category: "Soups"},
	{name: "Mutton Bone Soup", price: "₹160", vegetarian: false, category: "Soups"},
	{name: "Nattu Kozhi Soup", price: "₹160", vegetarian: false, category: "Soups"},
	{name: "Karikalan SPL Crab Pepper Soup", price: "₹190", vegetarian: false, category: "Soups", featured: true},

	// Starters
	{name: "Gobi Masala", price: "₹160", vegetarian: true, category: "Starters"},
	{name: "Gobi 65", price: "₹170", vegetarian: true, category: "Starters"},
	{name: "Gobi Manchurian", price: "₹170", vegetarian: true, category: "Starters"},
	{name: "Mushroom 65", price: "₹180", vegetarian: true, category: "Starters"},
	{name: "Mushroom Manchurian", price: "₹200", vegetarian: true, category: "Starters"},
	{name: "Paneer 65", price: "₹230", vegetarian: true, category: "Starters", featured: true},
	{name: "Chilly Paneer", price: "₹230", vegetarian: true, category: "Starters"},
	{name: "Paneer Tikka", price: "₹250", vegetarian: true, category: "Starters"},

	// Eggs
	{name: "Egg Omelette", price: "₹50", vegetarian: false, category: "Eggs"},
	{name: "Egg 65", price: "₹60", vegetarian: false, category: "Eggs"},
	{name: "Kalakki", price: "₹80", vegetarian: false, category: "Eggs"},
	{name: "Special Kalakki", price: "₹120", vegetarian: false, category: "Eggs"},
	{name: "Karikalan Special Chicken Omlette", price: "₹220", vegetarian: false, category: "Eggs"},

	// Main Course
	{name: "Veg Biryani", price: "₹200", vegetarian: true, category: "Main Course"},
	{name: "Chicken Biryani", price: "₹250", vegetarian: false, category: "Main Course", featured: true},
	{name: "Mutton Biryani", price: "₹350", vegetarian: false, category: "Main Course"},
}

// defaultMenu converts the raw menu rows into typed catalog items. An
// unparseable price label yields a zero price and is flagged for developer
// attention rather than crashing the load.
func defaultMenu(log *logger.Logger) []models.CatalogItem {
	items := make([]models.CatalogItem, 0, len(menuEntries))
	for _, e := range menuEntries {
		price, ok := ParsePrice(e.price)
		if !ok && log != nil {
			log.Warn("price_parse_failed", "Menu item has an unparseable price label, defaulting to 0", "startup", map[string]interface{}{
				"item":  e.name,
				"label": e.price,
			})
		}
		items = append(items, models.CatalogItem{
			Name:       e.name,
			Price:      price,
			Vegetarian: e.vegetarian,
			Category:   e.category,
			Featured:   e.featured,
		})
	}
	return items
}
