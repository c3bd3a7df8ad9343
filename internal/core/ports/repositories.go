package ports

import (
	"context"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// SiteRepository loads the ecovillage dataset in row order.
type SiteRepository interface {
	List(ctx context.Context) ([]domain.Site, error)
}

// SiteWriter replaces the stored dataset.
type SiteWriter interface {
	ReplaceAll(ctx context.Context, sites []domain.Site) error
}

// SelectionStore keeps each dashboard session's selection.
// Load returns the zero Selection for a session it has never seen.
type SelectionStore interface {
	Load(ctx context.Context, sessionID string) (domain.Selection, error)
	Save(ctx context.Context, sessionID string, sel domain.Selection) error
}
