package ordering

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gokulraj121/karikalan-restaurant/internal/checkout"
)

// session owns one browsing session's cart and checkout flow. The flow and
// its cart store are single-writer; the session mutex serializes the HTTP
// handlers that act on them.
type session struct {
	mu       sync.Mutex
	flow     *checkout.Flow
	lastSeen time.Time
}

// sessionManager hands out per-session checkout flows keyed by the session
// cookie value, and evicts idle sessions.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session
	newFlow  func() *checkout.Flow
	ttl      time.Duration
}

func newSessionManager(newFlow func() *checkout.Flow, ttl time.Duration) *sessionManager {
	return &sessionManager{
		sessions: make(map[string]*session),
		newFlow:  newFlow,
		ttl:      ttl,
	}
}

// newID returns a fresh session identifier.
func (m *sessionManager) newID() string {
	return uuid.NewString()
}

// acquire returns the locked session for id, creating it if needed. The
// caller must call the returned release function when done.
func (m *sessionManager) acquire(id string) (*session, func()) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		s = &session{flow: m.newFlow()}
		m.sessions[id] = s
	}
	s.lastSeen = time.Now()
	m.mu.Unlock()

	s.mu.Lock()
	return s, s.mu.Unlock
}

// sweep drops sessions idle for longer than the TTL.
func (m *sessionManager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}

// sweepLoop runs sweep periodically until stop is closed.
func (m *sessionManager) sweepLoop(stop <-chan struct{}) {
	ticker := time.NewTicker(m.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}
