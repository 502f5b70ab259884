package domain

import (
	"errors"
	"unicode/utf8"

	"github.com/phrazzld/geotask-api/internal/domain/geo"
)

// DefaultGeofenceRadius is the radius, in meters, given to locations
// registered without an explicit geofence.
const DefaultGeofenceRadius = 100

// MaxLocationNameLength bounds the optional location name.
const MaxLocationNameLength = 100

// Location validation errors
var (
	ErrLocationLatitude   = errors.New("latitude must be a number between -90 and 90")
	ErrLocationLongitude  = errors.New("longitude must be a number between -180 and 180")
	ErrLocationRadius     = errors.New("geofence radius must be a positive number of meters")
	ErrLocationNameLength = errors.New("location name is too long")
)

// Location is a registered point on the map with a circular geofence around it.
type Location struct {
	ID             int64   `json:"id"`
	Name           *string `json:"name,omitempty"`
	Latitude       float64 `json:"latitude"`
	Longitude      float64 `json:"longitude"`
	GeofenceRadius int     `json:"geofence_radius"`
}

// NewLocationParams carries the fields accepted when registering a location.
// A nil GeofenceRadius means DefaultGeofenceRadius.
type NewLocationParams struct {
	Name           *string
	Latitude       float64
	Longitude      float64
	GeofenceRadius *int
}

// NewLocation builds a validated Location. The ID is assigned by the store.
func NewLocation(params NewLocationParams) (*Location, error) {
	radius := DefaultGeofenceRadius
	if params.GeofenceRadius != nil {
		radius = *params.GeofenceRadius
	}

	loc := &Location{
		Name:           params.Name,
		Latitude:       params.Latitude,
		Longitude:      params.Longitude,
		GeofenceRadius: radius,
	}

	if err := loc.Validate(); err != nil {
		return nil, err
	}

	return loc, nil
}

// Validate checks the coordinate, radius and name invariants.
func (l *Location) Validate() error {
	if err := l.Point().Validate(); err != nil {
		if errors.Is(err, geo.ErrLongitudeOutOfRange) {
			return NewValidationError("longitude", "is out of range", ErrLocationLongitude)
		}
		if errors.Is(err, geo.ErrLatitudeOutOfRange) {
			return NewValidationError("latitude", "is out of range", ErrLocationLatitude)
		}
		return NewValidationError("coordinates", "must be finite numbers", ErrValidation)
	}

	if l.GeofenceRadius <= 0 {
		return NewValidationError("geofence_radius", "must be greater than zero", ErrLocationRadius)
	}

	if l.Name != nil && utf8.RuneCountInString(*l.Name) > MaxLocationNameLength {
		return NewValidationError("name", "must be at most 100 characters", ErrLocationNameLength)
	}

	return nil
}

// Point returns the geofence center.
func (l *Location) Point() geo.Point {
	return geo.Point{Lat: l.Latitude, Lon: l.Longitude}
}

// Contains reports whether p lies inside the location's geofence, i.e. the
// great-circle distance from the center is at most GeofenceRadius.
func (l *Location) Contains(p geo.Point) (bool, error) {
	return geo.Within(l.Point(), float64(l.GeofenceRadius), p)
}

// LocationPatch is a partial update of a Location. Nil fields are left as they are.
type LocationPatch struct {
	Name           *string
	Latitude       *float64
	Longitude      *float64
	GeofenceRadius *int
}

// IsEmpty reports whether the patch changes nothing.
func (p LocationPatch) IsEmpty() bool {
	return p.Name == nil && p.Latitude == nil && p.Longitude == nil && p.GeofenceRadius == nil
}

// ApplyPatch applies the supplied fields and re-validates the location.
// On validation failure the location is restored to its previous state.
func (l *Location) ApplyPatch(patch LocationPatch) error {
	orig := *l

	if patch.Name != nil {
		name := *patch.Name
		l.Name = &name
	}
	if patch.Latitude != nil {
		l.Latitude = *patch.Latitude
	}
	if patch.Longitude != nil {
		l.Longitude = *patch.Longitude
	}
	if patch.GeofenceRadius != nil {
		l.GeofenceRadius = *patch.GeofenceRadius
	}

	if err := l.Validate(); err != nil {
		*l = orig
		return err
	}

	return nil
}
