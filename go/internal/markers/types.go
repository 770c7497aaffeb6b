package markers

import "errors"

// UnknownCountry is the fallback recorded when reverse geocoding fails or
// the request carries no country.
const UnknownCountry = "Unknown"

// MaxMessageLength caps the free-text message on a marker.
const MaxMessageLength = 100

// ErrInvalidMarker is returned when a create request fails validation
var ErrInvalidMarker = errors.New("invalid marker")

// CreateMarkerRequest represents the data needed to place a new marker
type CreateMarkerRequest struct {
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	Name    string  `json:"name"`
	Message string  `json:"message"`
	Country string  `json:"country"`
}
