package usecases_test

import (
	"testing"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/core/usecases"
)

func coordSites(coords ...string) []domain.Site {
	out := make([]domain.Site, len(coords))
	for i, c := range coords {
		out[i] = domain.Site{Index: i, CoordinateText: c}
	}
	return out
}

func TestResolveNearest_Closest(t *testing.T) {
	sites := coordSites("0,0", "10,10", "5,5")
	if got := usecases.ResolveNearest(4, 4, sites); got != 2 {
		t.Errorf("expected index 2, got %d", got)
	}
}

func TestResolveNearest_ExactMatchWins(t *testing.T) {
	sites := coordSites("43.2630,-2.9350", "42.8240,-1.2707", "40.4169,-3.7035")
	for i, s := range sites {
		c := s.Coordinate()
		if got := usecases.ResolveNearest(c.Lat, c.Lon, sites); got != i {
			t.Errorf("exact match on row %d resolved to %d", i, got)
		}
	}
}

func TestResolveNearest_SkipsInvalidRows(t *testing.T) {
	sites := coordSites("bad text", "10,10")
	if got := usecases.ResolveNearest(9, 9, sites); got != 1 {
		t.Errorf("expected index 1, got %d", got)
	}
}

func TestResolveNearest_MapsBackToOriginalIndex(t *testing.T) {
	sites := coordSites("", "x,y", "1,1", "", "20,20")
	if got := usecases.ResolveNearest(19, 19, sites); got != 4 {
		t.Errorf("expected index 4, got %d", got)
	}
}

func TestResolveNearest_NoValidRowsFallsBackToZero(t *testing.T) {
	cases := map[string][]domain.Site{
		"empty":       nil,
		"all invalid": coordSites("", "1.0", "a,b"),
	}
	for name, sites := range cases {
		t.Run(name, func(t *testing.T) {
			if got := usecases.ResolveNearest(12.5, -7, sites); got != 0 {
				t.Errorf("expected fallback 0, got %d", got)
			}
		})
	}
}

func TestResolveNearest_TieGoesToFirst(t *testing.T) {
	sites := coordSites("1,0", "-1,0")
	if got := usecases.ResolveNearest(0, 0, sites); got != 0 {
		t.Errorf("expected first of tied rows, got %d", got)
	}
}

func TestResolveNearest_Idempotent(t *testing.T) {
	sites := coordSites("0,0", "10,10", "5,5", "bad")
	first := usecases.ResolveNearest(7.3, 6.1, sites)
	second := usecases.ResolveNearest(7.3, 6.1, sites)
	if first != second {
		t.Errorf("expected identical results, got %d and %d", first, second)
	}
}

func TestApplyClick_SetsState(t *testing.T) {
	sites := coordSites("0,0", "10,10", "5,5")
	var sel domain.Selection
	ev := domain.ClickEvent{Source: domain.ClickMarker, Point: domain.GeoPoint{Lat: 10, Lon: 10}}

	if got := usecases.ApplyClick(&sel, ev, sites); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if sel.Get() != 1 {
		t.Errorf("expected selection 1, got %d", sel.Get())
	}
}
