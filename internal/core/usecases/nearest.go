package usecases

import (
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
	"github.com/samirrijal/ecoaldeas/internal/pkg/geospatial"
)

// ResolveNearest returns the index in sites of the row whose coordinate is
// closest to (lat, lon). Rows with unparseable coordinates are skipped.
// When no row has a valid coordinate it returns 0, even if sites is empty;
// callers must range-check before dereferencing.
func ResolveNearest(lat, lon float64, sites []domain.Site) int {
	points := make([]domain.GeoPoint, 0, len(sites))
	owners := make([]int, 0, len(sites))
	for i, s := range sites {
		if p, ok := s.Coordinate().Point(); ok {
			points = append(points, p)
			owners = append(owners, i)
		}
	}

	pos, ok := geospatial.Nearest(domain.GeoPoint{Lat: lat, Lon: lon}, points)
	if !ok {
		return 0
	}
	return owners[pos]
}

// ApplyClick resolves ev against sites and stores the result in state.
func ApplyClick(state *domain.Selection, ev domain.ClickEvent, sites []domain.Site) int {
	idx := ResolveNearest(ev.Point.Lat, ev.Point.Lon, sites)
	state.Set(idx)
	return idx
}
