package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

func TestParseCoordinate_Valid(t *testing.T) {
	c := domain.ParseCoordinate("40.1,-3.5")
	require.True(t, c.Valid)
	assert.InDelta(t, 40.1, c.Lat, 1e-12)
	assert.InDelta(t, -3.5, c.Lon, 1e-12)
}

func TestParseCoordinate_TrimsWhitespace(t *testing.T) {
	c := domain.ParseCoordinate(" 42.8125, -1.6458 ")
	require.True(t, c.Valid)
	assert.InDelta(t, 42.8125, c.Lat, 1e-12)
	assert.InDelta(t, -1.6458, c.Lon, 1e-12)
}

func TestParseCoordinate_ZeroIsValid(t *testing.T) {
	c := domain.ParseCoordinate("0,0")
	assert.True(t, c.Valid)
	assert.NotEqual(t, domain.Coordinate{}, c)
}

func TestParseCoordinate_Invalid(t *testing.T) {
	cases := map[string]string{
		"non-numeric":   "not,numbers",
		"empty":         "",
		"single field":  "1.0",
		"three fields":  "1,2,3",
		"missing value": "1.0,",
		"nan":           "NaN,1",
		"inf":           "1,+Inf",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			c := domain.ParseCoordinate(in)
			assert.False(t, c.Valid)
			_, ok := c.Point()
			assert.False(t, ok)
		})
	}
}

func TestParseCoordinateStrict_WrapsSentinel(t *testing.T) {
	_, err := domain.ParseCoordinateStrict("abc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidCoordinate))
}
