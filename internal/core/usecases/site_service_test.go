package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/usecases"
)

func newLoadedSiteService(t *testing.T, sites []domain.Site) *usecases.SiteService {
	t.Helper()
	svc := usecases.NewSiteService(&mockSiteRepo{
		listFn: func(ctx context.Context) ([]domain.Site, error) { return sites, nil },
	}, usecases.DefaultMapDefaults)
	if err := svc.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return svc
}

func TestSiteService_LoadAssignsIndexes(t *testing.T) {
	svc := newLoadedSiteService(t, fixtureSites())

	if svc.Count() != 4 {
		t.Fatalf("expected 4 sites, got %d", svc.Count())
	}
	for i, s := range svc.Sites() {
		if s.Index != i {
			t.Errorf("site %q: expected index %d, got %d", s.Name, i, s.Index)
		}
	}
}

func TestSiteService_LoadError(t *testing.T) {
	svc := usecases.NewSiteService(&mockSiteRepo{
		listFn: func(ctx context.Context) ([]domain.Site, error) { return nil, errors.New("boom") },
	}, usecases.DefaultMapDefaults)

	if err := svc.Load(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestSiteService_Markers(t *testing.T) {
	svc := newLoadedSiteService(t, fixtureSites())

	markers := svc.Markers()
	if len(markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(markers))
	}
	if svc.Unmapped() != 1 {
		t.Errorf("expected 1 unmapped site, got %d", svc.Unmapped())
	}

	want := []struct {
		index int
		color string
	}{
		{0, domain.ColorActive},
		{1, domain.ColorInactive},
		{3, domain.ColorInactive},
	}
	for i, w := range want {
		if markers[i].Index != w.index {
			t.Errorf("marker %d: expected row %d, got %d", i, w.index, markers[i].Index)
		}
		if markers[i].Color != w.color {
			t.Errorf("marker %d: expected %s, got %s", i, w.color, markers[i].Color)
		}
	}
	if markers[0].Popup.Name != "Lakabe" {
		t.Errorf("expected popup name Lakabe, got %s", markers[0].Popup.Name)
	}
}

func TestSiteService_Get(t *testing.T) {
	svc := newLoadedSiteService(t, fixtureSites())

	s, err := svc.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Arterra" {
		t.Errorf("expected Arterra, got %s", s.Name)
	}

	for _, idx := range []int{-1, 4} {
		if _, err := svc.Get(idx); !errors.Is(err, domain.ErrSiteNotFound) {
			t.Errorf("index %d: expected ErrSiteNotFound, got %v", idx, err)
		}
	}
}

func TestSiteService_Nearest(t *testing.T) {
	svc := newLoadedSiteService(t, fixtureSites())

	s, dist, err := svc.Nearest(42.74, -1.60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "Arterra" {
		t.Errorf("expected Arterra, got %s", s.Name)
	}
	if dist <= 0 || dist > 2000 {
		t.Errorf("expected distance under 2km, got %.0fm", dist)
	}
}

func TestSiteService_NearestEmptyDataset(t *testing.T) {
	svc := newLoadedSiteService(t, nil)

	if _, _, err := svc.Nearest(1, 1); !errors.Is(err, domain.ErrSiteNotFound) {
		t.Errorf("expected ErrSiteNotFound, got %v", err)
	}
}

func TestBuildMapView_CenterOnFirstRow(t *testing.T) {
	view := usecases.BuildMapView(fixtureSites(), usecases.DefaultMapDefaults)

	if view.Center != (domain.GeoPoint{Lat: 42.8240, Lon: -1.2707}) {
		t.Errorf("expected centre on first row, got %+v", view.Center)
	}
	if view.Zoom != 6 {
		t.Errorf("expected zoom 6, got %d", view.Zoom)
	}
	if view.Bounds == nil || view.Bounds.MinLon != -6.4183 || view.Bounds.MaxLon != -1.2707 {
		t.Errorf("unexpected bounds %+v", view.Bounds)
	}
}

func TestBuildMapView_FallbackCenter(t *testing.T) {
	sites := fixtureSites()
	sites[0].CoordinateText = "sin datos"

	view := usecases.BuildMapView(sites, usecases.DefaultMapDefaults)
	if view.Center != usecases.DefaultMapDefaults.Center {
		t.Errorf("expected fallback centre, got %+v", view.Center)
	}
}

func TestBuildMapView_Empty(t *testing.T) {
	view := usecases.BuildMapView(nil, usecases.DefaultMapDefaults)
	if view.Center != usecases.DefaultMapDefaults.Center {
		t.Errorf("expected fallback centre, got %+v", view.Center)
	}
	if len(view.Markers) != 0 || view.Bounds != nil {
		t.Errorf("expected no markers and no bounds, got %d / %+v", len(view.Markers), view.Bounds)
	}
}
