// Package planning implements the conversational travel-planning flow: a
// forward-only slot-filling state machine, message extraction (model-backed
// with deterministic fallbacks), and the session store that holds
// conversations between requests.
package planning

import (
	"context"
	"sync"
	"time"

	"github.com/renMarkHan/SummerHomeRecommender-BestChoice/internal/model"
)

// SessionStore keeps in-progress planning sessions. Implementations hand out
// deep copies; callers persist changes with Put.
type SessionStore interface {
	Get(sessionID string) (*model.TravelSession, bool)
	Put(s *model.TravelSession)
	Delete(sessionID string) bool
}

// MemoryStore is an in-process SessionStore with idle expiry. A session whose
// last update is older than the TTL is treated as gone even before the
// janitor sweeps it.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]*model.TravelSession
}

var _ SessionStore = (*MemoryStore)(nil)

// NewMemoryStore builds a store that expires sessions idle longer than ttl.
// A non-positive ttl disables expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]*model.TravelSession),
	}
}

func (m *MemoryStore) Get(sessionID string) (*model.TravelSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.entries[sessionID]
	if !ok {
		return nil, false
	}
	if m.expired(s, time.Now()) {
		delete(m.entries, sessionID)
		return nil, false
	}
	return s.Clone(), true
}

func (m *MemoryStore) Put(s *model.TravelSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.SessionID] = s.Clone()
}

func (m *MemoryStore) Delete(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[sessionID]; !ok {
		return false
	}
	delete(m.entries, sessionID)
	return true
}

// Len reports the number of live sessions.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// StartJanitor sweeps expired sessions every interval until ctx is canceled.
func (m *MemoryStore) StartJanitor(ctx context.Context, interval time.Duration) {
	if m.ttl <= 0 {
		return
	}
	go func() {
		t := time.NewTicker(interval)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				m.sweep(time.Now())
			}
		}
	}()
}

func (m *MemoryStore) sweep(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, s := range m.entries {
		if m.expired(s, now) {
			delete(m.entries, id)
		}
	}
}

func (m *MemoryStore) expired(s *model.TravelSession, now time.Time) bool {
	return m.ttl > 0 && now.Sub(s.UpdateTime) > m.ttl
}
