package usecases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/usecases"
)

func TestSelectionService_DefaultsToFirstRow(t *testing.T) {
	svc := usecases.NewSelectionService(newLoadedSiteService(t, fixtureSites()), newMockStore(), nil)

	d, err := svc.Detail(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Index != 0 || d.Name != "Lakabe" {
		t.Errorf("expected row 0 Lakabe, got %d %s", d.Index, d.Name)
	}
}

func TestSelectionService_MarkerClickEndToEnd(t *testing.T) {
	sites := newLoadedSiteService(t, fixtureSites())
	pub := &mockPublisher{}
	svc := usecases.NewSelectionService(sites, newMockStore(), pub)
	ctx := context.Background()

	m := sites.Markers()[2] // Matavenero, row 3
	res, err := svc.Handle(ctx, "s1", domain.MapInteraction{
		LastObjectClicked: &domain.LatLng{Lat: m.Lat, Lng: m.Lon},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Event == nil || res.Event.Source != domain.ClickMarker {
		t.Fatalf("expected marker event, got %+v", res.Event)
	}
	if res.Selection.Index != 3 {
		t.Errorf("expected selection 3, got %d", res.Selection.Index)
	}

	d, err := svc.Detail(ctx, "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.ImageURL != "https://img.example/Matavenero.jpg" || d.Description != "Matavenero description" {
		t.Errorf("unexpected detail %+v", d)
	}
	if len(pub.published) != 1 || pub.sessions[0] != "s1" || pub.published[0].Index != 3 {
		t.Errorf("expected one publish for s1 row 3, got %+v", pub.published)
	}
}

func TestSelectionService_MapClickResolvesNearest(t *testing.T) {
	svc := usecases.NewSelectionService(newLoadedSiteService(t, fixtureSites()), newMockStore(), nil)

	res, err := svc.Handle(context.Background(), "s1", domain.MapInteraction{
		LastClicked: &domain.LatLng{Lat: 42.70, Lng: -1.70},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Event.Source != domain.ClickMap {
		t.Errorf("expected map event, got %s", res.Event.Source)
	}
	if res.Detail == nil || res.Detail.Name != "Arterra" {
		t.Errorf("expected Arterra, got %+v", res.Detail)
	}
}

func TestSelectionService_NoEventKeepsState(t *testing.T) {
	store := newMockStore()
	store.byID["s1"] = domain.Selection{Index: 1}
	svc := usecases.NewSelectionService(newLoadedSiteService(t, fixtureSites()), store, nil)

	res, err := svc.Handle(context.Background(), "s1", domain.MapInteraction{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Event != nil {
		t.Errorf("expected no event, got %+v", res.Event)
	}
	if res.Selection.Index != 1 {
		t.Errorf("expected selection to stay 1, got %d", res.Selection.Index)
	}
}

func TestSelectionService_SessionsAreIsolated(t *testing.T) {
	svc := usecases.NewSelectionService(newLoadedSiteService(t, fixtureSites()), newMockStore(), nil)
	ctx := context.Background()

	_, _ = svc.Handle(ctx, "a", domain.MapInteraction{LastClicked: &domain.LatLng{Lat: 42.5, Lng: -6.4}})

	a, _ := svc.Current(ctx, "a")
	b, _ := svc.Current(ctx, "b")
	if a.Index != 3 || b.Index != 0 {
		t.Errorf("expected a=3 b=0, got a=%d b=%d", a.Index, b.Index)
	}
}

func TestSelectionService_EmptyDatasetHasNoSelection(t *testing.T) {
	svc := usecases.NewSelectionService(newLoadedSiteService(t, nil), newMockStore(), nil)
	ctx := context.Background()

	res, err := svc.Handle(ctx, "s1", domain.MapInteraction{LastClicked: &domain.LatLng{Lat: 1, Lng: 1}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Selection.Index != 0 || res.Detail != nil {
		t.Errorf("expected fallback index 0 with no detail, got %+v", res)
	}
	if _, err := svc.Detail(ctx, "s1"); !errors.Is(err, domain.ErrNoSelection) {
		t.Errorf("expected ErrNoSelection, got %v", err)
	}
}

func TestSelectionService_SaveError(t *testing.T) {
	store := newMockStore()
	store.saveErr = errors.New("store down")
	svc := usecases.NewSelectionService(newLoadedSiteService(t, fixtureSites()), store, nil)

	_, err := svc.Handle(context.Background(), "s1", domain.MapInteraction{LastClicked: &domain.LatLng{Lat: 1, Lng: 1}})
	if err == nil {
		t.Fatal("expected error")
	}
}
