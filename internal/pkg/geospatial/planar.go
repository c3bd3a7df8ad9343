package geospatial

import (
	"math"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

// Euclidean returns the straight-line distance between two points measured
// in degrees of latitude/longitude. It ignores the earth's curvature, which
// is fine for ranking a few nearby markers.
func Euclidean(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := lat1 - lat2
	dLon := lon1 - lon2
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Nearest returns the position in points closest to target by Euclidean
// distance. Ties go to the earliest point. ok is false for an empty slice.
func Nearest(target domain.GeoPoint, points []domain.GeoPoint) (idx int, ok bool) {
	if len(points) == 0 {
		return 0, false
	}
	best := math.Inf(1)
	for i, p := range points {
		if d := Euclidean(p.Lat, p.Lon, target.Lat, target.Lon); d < best {
			best, idx = d, i
		}
	}
	return idx, true
}

// Extent returns the bounding box of points, or nil when there are none.
func Extent(points []domain.GeoPoint) *domain.Bounds {
	if len(points) == 0 {
		return nil
	}
	b := &domain.Bounds{
		MinLat: points[0].Lat, MaxLat: points[0].Lat,
		MinLon: points[0].Lon, MaxLon: points[0].Lon,
	}
	for _, p := range points[1:] {
		b.MinLat = math.Min(b.MinLat, p.Lat)
		b.MaxLat = math.Max(b.MaxLat, p.Lat)
		b.MinLon = math.Min(b.MinLon, p.Lon)
		b.MaxLon = math.Max(b.MaxLon, p.Lon)
	}
	return b
}
