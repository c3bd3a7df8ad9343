package valkey

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
	"github.com/samirrijal/ecoaldeas/internal/pkg/metrics"
)

const selectionKeyPrefix = "ecoaldeas:selection:"

// SelectionStore implements ports.SelectionStore on top of a CacheService.
// Each Save refreshes the entry's TTL so it lives as long as the session.
type SelectionStore struct {
	cache ports.CacheService
	ttl   int
}

// NewSelectionStore creates a SelectionStore whose entries expire after ttl.
func NewSelectionStore(cache ports.CacheService, ttl time.Duration) *SelectionStore {
	secs := int(ttl / time.Second)
	if secs <= 0 {
		secs = 3600
	}
	return &SelectionStore{cache: cache, ttl: secs}
}

// Load returns the session's selection, or the zero Selection on a miss.
func (s *SelectionStore) Load(ctx context.Context, sessionID string) (domain.Selection, error) {
	data, err := s.cache.Get(ctx, selectionKeyPrefix+sessionID)
	if errors.Is(err, ErrCacheMiss) {
		metrics.CacheMisses.WithLabelValues("selection").Inc()
		return domain.Selection{}, nil
	}
	if err != nil {
		return domain.Selection{}, fmt.Errorf("get selection: %w", err)
	}
	metrics.CacheHits.WithLabelValues("selection").Inc()

	var sel domain.Selection
	if err := json.Unmarshal(data, &sel); err != nil {
		// An undecodable entry is dropped so the session starts over.
		slog.Warn("drop unreadable selection", "session", sessionID, "error", err)
		if err := s.cache.Delete(ctx, selectionKeyPrefix+sessionID); err != nil {
			return domain.Selection{}, fmt.Errorf("delete selection: %w", err)
		}
		return domain.Selection{}, nil
	}
	return sel, nil
}

// Save stores the session's selection.
func (s *SelectionStore) Save(ctx context.Context, sessionID string, sel domain.Selection) error {
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, selectionKeyPrefix+sessionID, data, s.ttl); err != nil {
		return fmt.Errorf("set selection: %w", err)
	}
	return nil
}
