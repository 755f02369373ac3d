package catalog

import (
	"testing"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

func TestItemID(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Chicken Biryani", "chicken-biryani"},
		{"Hot & Sour Soup (Veg)", "hot-sour-soup-veg"},
		{"Gobi 65", "gobi-65"},
		{"  Paneer  Tikka ", "paneer-tikka"},
	}
	for _, tt := range tests {
		if got := ItemID(tt.name); got != tt.want {
			t.Errorf("ItemID(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		label string
		want  int
		ok    bool
	}{
		{"₹110", 110, true},
		{"110", 110, true},
		{"₹1,250", 1250, true},
		{"free", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParsePrice(tt.label)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParsePrice(%q) = (%d, %v), want (%d, %v)", tt.label, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNewMergesDuplicateNames(t *testing.T) {
	c := New([]models.CatalogItem{
		{Name: "Gobi 65", Price: 170},
		{Name: "Gobi 65", Price: 999},
	})
	if c.Len() != 1 {
		t.Fatalf("expected 1 item, got %d", c.Len())
	}
	item, ok := c.Get("gobi-65")
	if !ok {
		t.Fatal("expected gobi-65 to exist")
	}
	if item.Price != 170 {
		t.Errorf("expected first entry to win, got price %d", item.Price)
	}
}

func TestListFilters(t *testing.T) {
	c := Default(nil)
	if c.Len() == 0 {
		t.Fatal("default catalog is empty")
	}

	veg := true
	for _, item := range c.List(Filter{Vegetarian: &veg}) {
		if !item.Vegetarian {
			t.Errorf("non-vegetarian item %q in vegetarian filter", item.Name)
		}
	}

	soups := c.List(Filter{Category: "soups"})
	if len(soups) == 0 {
		t.Fatal("expected soups in default catalog")
	}
	for _, item := range soups {
		if item.Category != "Soups" {
			t.Errorf("item %q has category %q, want Soups", item.Name, item.Category)
		}
	}
}

func TestDefaultMenuPricesTyped(t *testing.T) {
	for _, item := range Default(nil).List(Filter{}) {
		if item.Price <= 0 {
			t.Errorf("item %q has non-positive price %d", item.Name, item.Price)
		}
		if item.PriceLabel() == "" {
			t.Errorf("item %q has empty price label", item.Name)
		}
	}
}
