package usecases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/ports"
)

// ClickResult is the outcome of handling one map interaction.
type ClickResult struct {
	Event     *domain.ClickEvent `json:"event"`
	Selection domain.Selection   `json:"selection"`
	Detail    *domain.Detail     `json:"detail"`
}

// SelectionService drives per-session selection state from click events.
type SelectionService struct {
	sites  *SiteService
	store  ports.SelectionStore
	events ports.EventPublisher
}

// NewSelectionService creates a SelectionService. events may be nil.
func NewSelectionService(sites *SiteService, store ports.SelectionStore, events ports.EventPublisher) *SelectionService {
	return &SelectionService{sites: sites, store: store, events: events}
}

// Current returns the session's selection (index 0 for a new session).
func (s *SelectionService) Current(ctx context.Context, sessionID string) (domain.Selection, error) {
	sel, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return domain.Selection{}, fmt.Errorf("load selection: %w", err)
	}
	return sel, nil
}

// Handle applies a map interaction to the session's selection. An
// interaction without a click leaves the selection untouched.
func (s *SelectionService) Handle(ctx context.Context, sessionID string, m domain.MapInteraction) (*ClickResult, error) {
	sel, err := s.Current(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	res := &ClickResult{Selection: sel}
	ev, ok := m.Event()
	if !ok {
		if d, err := s.detailFor(sel); err == nil {
			res.Detail = &d
		}
		return res, nil
	}
	res.Event = &ev

	ApplyClick(&sel, ev, s.sites.Sites())
	if err := s.store.Save(ctx, sessionID, sel); err != nil {
		return nil, fmt.Errorf("save selection: %w", err)
	}
	res.Selection = sel

	d, err := s.detailFor(sel)
	if err != nil {
		return res, nil
	}
	res.Detail = &d

	if s.events != nil {
		if err := s.events.PublishSelection(ctx, sessionID, d); err != nil {
			slog.Warn("publish selection", "session", sessionID, "error", err)
		}
	}
	return res, nil
}

// Detail returns the detail panel content for the session's selection, or
// domain.ErrNoSelection when the selection does not name a loaded row.
func (s *SelectionService) Detail(ctx context.Context, sessionID string) (domain.Detail, error) {
	sel, err := s.Current(ctx, sessionID)
	if err != nil {
		return domain.Detail{}, err
	}
	return s.detailFor(sel)
}

func (s *SelectionService) detailFor(sel domain.Selection) (domain.Detail, error) {
	site, err := s.sites.Get(sel.Get())
	if errors.Is(err, domain.ErrSiteNotFound) {
		return domain.Detail{}, domain.ErrNoSelection
	}
	if err != nil {
		return domain.Detail{}, err
	}
	return domain.DetailOf(site), nil
}
