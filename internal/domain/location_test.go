package domain

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/geotask-api/internal/domain/geo"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestNewLocation(t *testing.T) {
	t.Parallel()

	t.Run("default radius", func(t *testing.T) {
		t.Parallel()
		loc, err := NewLocation(NewLocationParams{Latitude: -0.1807, Longitude: -78.4678})
		require.NoError(t, err)
		assert.Equal(t, DefaultGeofenceRadius, loc.GeofenceRadius)
		assert.Nil(t, loc.Name)
	})

	t.Run("explicit radius and name", func(t *testing.T) {
		t.Parallel()
		loc, err := NewLocation(NewLocationParams{
			Name:           strPtr("Quito"),
			Latitude:       -0.1807,
			Longitude:      -78.4678,
			GeofenceRadius: intPtr(500),
		})
		require.NoError(t, err)
		assert.Equal(t, 500, loc.GeofenceRadius)
		assert.Equal(t, "Quito", *loc.Name)
	})
}

func TestNewLocationValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  NewLocationParams
		wantErr error
	}{
		{"latitude too high", NewLocationParams{Latitude: 90.5, Longitude: 0}, ErrLocationLatitude},
		{"latitude too low", NewLocationParams{Latitude: -91, Longitude: 0}, ErrLocationLatitude},
		{"longitude too high", NewLocationParams{Latitude: 0, Longitude: 180.1}, ErrLocationLongitude},
		{"longitude NaN", NewLocationParams{Latitude: 0, Longitude: math.NaN()}, ErrValidation},
		{"zero radius", NewLocationParams{GeofenceRadius: intPtr(0)}, ErrLocationRadius},
		{"negative radius", NewLocationParams{GeofenceRadius: intPtr(-5)}, ErrLocationRadius},
		{"name too long", NewLocationParams{Name: strPtr(strings.Repeat("n", 101))}, ErrLocationNameLength},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			loc, err := NewLocation(tc.params)
			assert.Nil(t, loc)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.ErrorIs(t, err, ErrValidation)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestLocationContains(t *testing.T) {
	t.Parallel()

	loc := &Location{Latitude: 0, Longitude: 0, GeofenceRadius: 1000}

	// 0.008 degrees of latitude is roughly 890 m.
	inside, err := loc.Contains(geo.Point{Lat: 0.008, Lon: 0})
	require.NoError(t, err)
	assert.True(t, inside)

	// 0.01 degrees is roughly 1112 m.
	inside, err = loc.Contains(geo.Point{Lat: 0.01, Lon: 0})
	require.NoError(t, err)
	assert.False(t, inside)

	inside, err = loc.Contains(loc.Point())
	require.NoError(t, err)
	assert.True(t, inside)
}

func TestLocationApplyPatch(t *testing.T) {
	t.Parallel()

	t.Run("applies supplied fields only", func(t *testing.T) {
		t.Parallel()
		loc := &Location{ID: 7, Name: strPtr("Old"), Latitude: 1, Longitude: 2, GeofenceRadius: 100}

		err := loc.ApplyPatch(LocationPatch{GeofenceRadius: intPtr(250)})
		require.NoError(t, err)

		assert.Equal(t, int64(7), loc.ID)
		assert.Equal(t, "Old", *loc.Name)
		assert.Equal(t, 1.0, loc.Latitude)
		assert.Equal(t, 2.0, loc.Longitude)
		assert.Equal(t, 250, loc.GeofenceRadius)
	})

	t.Run("invalid patch restores original", func(t *testing.T) {
		t.Parallel()
		loc := &Location{ID: 7, Latitude: 1, Longitude: 2, GeofenceRadius: 100}

		err := loc.ApplyPatch(LocationPatch{Latitude: floatPtr(45), Longitude: floatPtr(200)})
		assert.ErrorIs(t, err, ErrLocationLongitude)

		assert.Equal(t, 1.0, loc.Latitude)
		assert.Equal(t, 2.0, loc.Longitude)
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()
		assert.True(t, LocationPatch{}.IsEmpty())
		assert.False(t, LocationPatch{Name: strPtr("x")}.IsEmpty())
	})
}
