// Package cart implements the session-scoped cart store: a single mutable
// collection of order lines shared by the menu-browsing surface and the
// checkout surface, with synchronous change notification.
package cart

// Line is one cart entry. At most one Line exists per item id; adding the
// same id again merges quantities.
type Line struct {
	ItemID    string `json:"id"`
	Name      string `json:"name"`
	UnitPrice int    `json:"price"`
	Quantity  int    `json:"quantity"`
}

// Total returns the line total (unit price × quantity).
func (l Line) Total() int {
	return l.UnitPrice * l.Quantity
}

// Subscriber receives the post-mutation snapshot of the cart.
type Subscriber func(lines []Line)

// Store is the owned cart object for one browsing session. It is
// single-writer: the owning session serializes all calls. Subscribers are
// invoked synchronously, before the mutating call returns, on every
// mutation, including ones that leave the collection value-unchanged.
type Store struct {
	lines   []Line
	subs    map[int]Subscriber
	nextSub int
}

// NewStore returns an empty cart store.
func NewStore() *Store {
	return &Store{subs: make(map[int]Subscriber)}
}

// AddItem merges delta into the line for itemID, creating the line if it
// does not exist. Delta may be negative; a resulting quantity of zero or
// less removes the line from the collection, so every consumer sees the
// same pruned view. Returns a snapshot of the full collection.
func (s *Store) AddItem(itemID string, delta int, name string, unitPrice int) []Line {
	idx := s.find(itemID)
	if idx >= 0 {
		s.lines[idx].Quantity += delta
		if s.lines[idx].Quantity <= 0 {
			s.lines = append(s.lines[:idx], s.lines[idx+1:]...)
		}
	} else if delta > 0 {
		s.lines = append(s.lines, Line{ItemID: itemID, Name: name, UnitPrice: unitPrice, Quantity: delta})
	}
	s.notify()
	return s.Lines()
}

// RemoveItem drives the line for itemID to zero quantity. It is the removal
// path: equivalent to AddItem with the negated current quantity.
func (s *Store) RemoveItem(itemID string) []Line {
	idx := s.find(itemID)
	if idx < 0 {
		// Still a mutation attempt; notify so views resync.
		s.notify()
		return s.Lines()
	}
	line := s.lines[idx]
	return s.AddItem(itemID, -line.Quantity, line.Name, line.UnitPrice)
}

// SetQuantity adjusts the line for itemID to exactly quantity.
func (s *Store) SetQuantity(itemID string, quantity int) []Line {
	idx := s.find(itemID)
	if idx < 0 {
		s.notify()
		return s.Lines()
	}
	line := s.lines[idx]
	return s.AddItem(itemID, quantity-line.Quantity, line.Name, line.UnitPrice)
}

// Lines returns a snapshot copy of the current lines. Mutating the returned
// slice never affects the store.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Subtotal returns the derived total over all lines, in whole currency units.
func (s *Store) Subtotal() int {
	total := 0
	for _, l := range s.lines {
		total += l.Total()
	}
	return total
}

// Empty reports whether the cart has no lines.
func (s *Store) Empty() bool {
	return len(s.lines) == 0
}

// Clear empties the collection and notifies subscribers. Called exactly
// once per order, immediately after a successful submission.
func (s *Store) Clear() {
	s.lines = nil
	s.notify()
}

// Subscribe registers fn for change notifications and returns a cancel
// function. Subscribers subscribe on mount and cancel on teardown.
func (s *Store) Subscribe(fn Subscriber) (cancel func()) {
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

func (s *Store) find(itemID string) int {
	for i, l := range s.lines {
		if l.ItemID == itemID {
			return i
		}
	}
	return -1
}

func (s *Store) notify() {
	if len(s.subs) == 0 {
		return
	}
	snapshot := s.Lines()
	for _, fn := range s.subs {
		fn(snapshot)
	}
}
