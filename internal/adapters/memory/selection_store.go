package memory

import (
	"context"
	"sync"
	"time"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
)

type entry struct {
	sel     domain.Selection
	touched time.Time
}

// SelectionStore implements ports.SelectionStore in process memory.
// Entries idle for longer than ttl are dropped by Sweep.
type SelectionStore struct {
	mu   sync.Mutex
	ttl  time.Duration
	byID map[string]entry
	now  func() time.Time
}

// NewSelectionStore creates an empty store. A ttl of zero keeps entries forever.
func NewSelectionStore(ttl time.Duration) *SelectionStore {
	return &SelectionStore{ttl: ttl, byID: make(map[string]entry), now: time.Now}
}

// Load returns the session's selection, or the zero Selection.
func (s *SelectionStore) Load(ctx context.Context, sessionID string) (domain.Selection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.byID[sessionID]
	if !ok || s.expired(e) {
		return domain.Selection{}, nil
	}
	return e.sel, nil
}

// Save stores the session's selection.
func (s *SelectionStore) Save(ctx context.Context, sessionID string, sel domain.Selection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[sessionID] = entry{sel: sel, touched: s.now()}
	return nil
}

// Len returns the number of stored sessions, expired or not.
func (s *SelectionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

// Sweep removes expired sessions and returns how many were dropped.
func (s *SelectionStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.byID {
		if s.expired(e) {
			delete(s.byID, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *SelectionStore) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.sweepAndRecord()
		case <-ctx.Done():
			return
		}
	}
}

// sweepAndRecord sweeps and publishes the remaining session count.
func (s *SelectionStore) sweepAndRecord() {
	s.Sweep()
	metrics.SelectionSessions.Set(float64(s.Len()))
}

func (s *SelectionStore) expired(e entry) bool {
	return s.ttl > 0 && s.now().Sub(e.touched) > s.ttl
}
