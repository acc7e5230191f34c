package kernel

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

const (
	minLatitude  = -90.0
	maxLatitude  = 90.0
	minLongitude = -180.0
	maxLongitude = 180.0
)

// GeoPoint is a geographic coordinate pair. Couriers may attach one to state
// changes and incident reports; it is always optional.
//
// GeoPoint is immutable. Construct through NewGeoPoint.
type GeoPoint struct {
	latitude  float64
	longitude float64

	isSet bool
}

// NewGeoPoint creates a GeoPoint, validating coordinate bounds.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < minLatitude || latitude > maxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("latitude", latitude, minLatitude, maxLatitude)
	}
	if longitude < minLongitude || longitude > maxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError("longitude", longitude, minLongitude, maxLongitude)
	}

	return GeoPoint{latitude: latitude, longitude: longitude, isSet: true}, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two points for exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.isSet == other.isSet && p.latitude == other.latitude && p.longitude == other.longitude
}

// String renders the point as "lat,lng" for history observations.
func (p GeoPoint) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.latitude, p.longitude)
}

// Validate returns an error for the zero value.
func (p GeoPoint) Validate() error {
	if !p.isSet {
		return errs.NewValueIsRequiredError("GeoPoint must be created via NewGeoPoint")
	}
	return nil
}
