package cart

import (
	"reflect"
	"testing"
)

func TestAddItemMergesByID(t *testing.T) {
	s := NewStore()
	s.AddItem("chicken-biryani", 2, "Chicken Biryani", 250)
	lines := s.AddItem("chicken-biryani", 3, "Chicken Biryani", 250)

	if len(lines) != 1 {
		t.Fatalf("expected exactly one line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", lines[0].Quantity)
	}
}

func TestAddItemNegativeDeltaPrunes(t *testing.T) {
	s := NewStore()
	s.AddItem("gobi-65", 2, "Gobi 65", 170)
	lines := s.AddItem("gobi-65", -2, "Gobi 65", 170)
	if len(lines) != 0 {
		t.Fatalf("expected zero-quantity line to be pruned, got %d lines", len(lines))
	}
}

func TestRemoveItem(t *testing.T) {
	s := NewStore()
	s.AddItem("gobi-65", 3, "Gobi 65", 170)
	s.AddItem("paneer-65", 1, "Paneer 65", 230)

	lines := s.RemoveItem("gobi-65")
	if len(lines) != 1 || lines[0].ItemID != "paneer-65" {
		t.Fatalf("expected only paneer-65 to remain, got %+v", lines)
	}
}

func TestSetQuantity(t *testing.T) {
	s := NewStore()
	s.AddItem("gobi-65", 1, "Gobi 65", 170)
	lines := s.SetQuantity("gobi-65", 4)
	if lines[0].Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", lines[0].Quantity)
	}
}

func TestLinesIsSnapshot(t *testing.T) {
	s := NewStore()
	s.AddItem("gobi-65", 2, "Gobi 65", 170)

	before := s.Lines()
	// A read-only operation must not change observed value.
	_ = s.Subtotal()
	after := s.Lines()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("snapshots differ across read-only operation: %+v vs %+v", before, after)
	}

	// Mutating the snapshot must not leak into the store.
	before[0].Quantity = 99
	if s.Lines()[0].Quantity != 2 {
		t.Error("external mutation of snapshot affected the store")
	}
}

func TestSubtotal(t *testing.T) {
	s := NewStore()
	s.AddItem("a", 2, "A", 100)
	s.AddItem("b", 1, "B", 250)
	if got := s.Subtotal(); got != 450 {
		t.Errorf("subtotal = %d, want 450", got)
	}
}

func TestNotifyOnEveryMutation(t *testing.T) {
	s := NewStore()
	var calls int
	var last []Line
	cancel := s.Subscribe(func(lines []Line) {
		calls++
		last = lines
	})

	s.AddItem("a", 1, "A", 100)
	s.AddItem("a", 0, "A", 100) // value-unchanged, still notifies
	s.Clear()

	if calls != 3 {
		t.Errorf("expected 3 notifications, got %d", calls)
	}
	if len(last) != 0 {
		t.Errorf("expected final notification with empty cart, got %+v", last)
	}

	cancel()
	s.AddItem("a", 1, "A", 100)
	if calls != 3 {
		t.Errorf("cancelled subscriber still notified, calls = %d", calls)
	}
}

func TestNotificationIsSynchronous(t *testing.T) {
	s := NewStore()
	seen := -1
	s.Subscribe(func(lines []Line) {
		seen = len(lines)
	})
	s.AddItem("a", 1, "A", 100)
	if seen != 1 {
		t.Errorf("subscriber not invoked before AddItem returned, seen = %d", seen)
	}
}
