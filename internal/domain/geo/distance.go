package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used by the haversine formula.
const EarthRadiusMeters = 6371000.0

// Valid coordinate ranges in decimal degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

var (
	// ErrNonFinite is returned when a coordinate or radius is NaN or infinite.
	ErrNonFinite = errors.New("coordinate is not a finite number")

	// ErrLatitudeOutOfRange is returned when a latitude lies outside [-90, 90].
	ErrLatitudeOutOfRange = errors.New("latitude must be between -90 and 90")

	// ErrLongitudeOutOfRange is returned when a longitude lies outside [-180, 180].
	ErrLongitudeOutOfRange = errors.New("longitude must be between -180 and 180")
)

// Point is a latitude/longitude pair in decimal degrees.
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// NewPoint builds a Point and validates it.
func NewPoint(lat, lon float64) (Point, error) {
	p := Point{Lat: lat, Lon: lon}
	if err := p.Validate(); err != nil {
		return Point{}, err
	}
	return p, nil
}

// Validate checks that both coordinates are finite and inside their ranges.
func (p Point) Validate() error {
	if !isFinite(p.Lat) || !isFinite(p.Lon) {
		return ErrNonFinite
	}
	if p.Lat < MinLatitude || p.Lat > MaxLatitude {
		return ErrLatitudeOutOfRange
	}
	if p.Lon < MinLongitude || p.Lon > MaxLongitude {
		return ErrLongitudeOutOfRange
	}
	return nil
}

// String renders the point as "lat,lon".
func (p Point) String() string {
	return fmt.Sprintf("%.7f,%.7f", p.Lat, p.Lon)
}

// Distance returns the great-circle distance between a and b in meters.
//
// The result is symmetric and zero for identical points. NaN or infinite
// input yields ErrNonFinite instead of a meaningless number.
func Distance(a, b Point) (float64, error) {
	if !isFinite(a.Lat) || !isFinite(a.Lon) || !isFinite(b.Lat) || !isFinite(b.Lon) {
		return 0, ErrNonFinite
	}
	if a == b {
		return 0, nil
	}

	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	// Rounding can push h a hair outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h)), nil
}

// Within reports whether p lies inside the circle of radiusMeters around
// center. Points exactly on the boundary are inside.
func Within(center Point, radiusMeters float64, p Point) (bool, error) {
	if !isFinite(radiusMeters) {
		return false, ErrNonFinite
	}
	d, err := Distance(center, p)
	if err != nil {
		return false, err
	}
	return d <= radiusMeters, nil
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
