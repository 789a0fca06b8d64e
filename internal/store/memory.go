// internal/store/memory.go
//
// In-memory implementation of the session Store interface.
// Holds the solver sessions driven over HTTP; durability is not required,
// a lost session is simply restarted by the client.
//
// Characteristics:
//   - Stores *Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - ErrNotFound is returned for missing session IDs on Get().

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordpicker/internal/solver"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("session not found")

// Session is one solver conversation. Callers hold the embedded mutex
// while reading or advancing it.
type Session struct {
	sync.Mutex

	ID      string
	Solver  *solver.Solver
	Pending string // guess awaiting feedback, empty once solved
	Trace   solver.Trace
	Touched time.Time
}

// Store defines the persistence interface for solver sessions.
type Store interface {
	// Save persists or updates a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// Prune drops idle sessions not touched since before and reports how
	// many. Sessions in use are kept.
	Prune(ctx context.Context, before time.Time) int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex        // guards sessions map
	sessions map[string]*Session // keyed by Session.ID
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Prune never waits on a session lock while holding m.mu: a session that is
// locked is in use and is skipped.
func (m *memory) Prune(ctx context.Context, before time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if !s.TryLock() {
			continue
		}
		stale := s.Touched.Before(before)
		s.Unlock()
		if stale {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
