package usecases_test

import (
	"context"
	"sync"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// --- Mock SiteRepository ---

type mockSiteRepo struct {
	listFn func(ctx context.Context) ([]domain.Site, error)
}

func (m *mockSiteRepo) List(ctx context.Context) ([]domain.Site, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

// --- Mock SelectionStore ---

type mockStore struct {
	mu      sync.Mutex
	byID    map[string]domain.Selection
	saveErr error
}

func newMockStore() *mockStore {
	return &mockStore{byID: map[string]domain.Selection{}}
}

func (m *mockStore) Load(ctx context.Context, sessionID string) (domain.Selection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.byID[sessionID], nil
}

func (m *mockStore) Save(ctx context.Context, sessionID string, sel domain.Selection) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byID[sessionID] = sel
	return nil
}

// --- Mock EventPublisher ---

type mockPublisher struct {
	published []domain.Detail
	sessions  []string
}

func (m *mockPublisher) PublishSelection(ctx context.Context, sessionID string, d domain.Detail) error {
	m.sessions = append(m.sessions, sessionID)
	m.published = append(m.published, d)
	return nil
}

// --- Fixtures ---

func site(name, coords, active string) domain.Site {
	return domain.Site{
		Name:           name,
		CoordinateText: coords,
		ActiveFlag:     active,
		ImageURL:       "https://img.example/" + name + ".jpg",
		Description:    name + " description",
	}
}

func fixtureSites() []domain.Site {
	return []domain.Site{
		site("Lakabe", "42.8240,-1.2707", "Y"),
		site("Arterra", "42.7370,-1.6050", "N"),
		site("Sin coordenadas", "pendiente", "Y"),
		site("Matavenero", "42.5563,-6.4183", ""),
	}
}
