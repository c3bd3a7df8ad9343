package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidCoordinate is returned when a coordinate field is not exactly
// two finite decimal numbers separated by a comma.
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is the parsed form of a "lat,lon" field. The zero value is
// invalid, so a valid (0, 0) is never confused with an unparseable field.
type Coordinate struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Valid bool    `json:"valid"`
}

// Point returns the coordinate as a GeoPoint and whether it is valid.
func (c Coordinate) Point() (GeoPoint, bool) {
	return GeoPoint{Lat: c.Lat, Lon: c.Lon}, c.Valid
}

// ParseCoordinate parses text of the form "lat,lon". Any malformed input
// yields an invalid Coordinate; it never fails.
func ParseCoordinate(text string) Coordinate {
	p, err := ParseCoordinateStrict(text)
	if err != nil {
		return Coordinate{}
	}
	return Coordinate{Lat: p.Lat, Lon: p.Lon, Valid: true}
}

// ParseCoordinateStrict is ParseCoordinate with the failure reason kept.
func ParseCoordinateStrict(text string) (GeoPoint, error) {
	fields := strings.Split(text, ",")
	if len(fields) != 2 {
		return GeoPoint{}, fmt.Errorf("%w: want 2 fields, got %d in %q", ErrInvalidCoordinate, len(fields), text)
	}

	var vals [2]float64
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return GeoPoint{}, fmt.Errorf("%w: missing value in %q", ErrInvalidCoordinate, text)
		}
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return GeoPoint{}, fmt.Errorf("%w: %q is not a number", ErrInvalidCoordinate, f)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return GeoPoint{}, fmt.Errorf("%w: %q is not finite", ErrInvalidCoordinate, f)
		}
		vals[i] = v
	}

	return GeoPoint{Lat: vals[0], Lon: vals[1]}, nil
}
