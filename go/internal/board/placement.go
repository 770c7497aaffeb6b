package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/markers"
	"github.com/mcdev12/pinmap/go/internal/models"
	"github.com/mcdev12/pinmap/go/internal/session"
)

// State tracks where the placement flow is between a map click and a
// committed marker.
type State int

const (
	StateIdle State = iota
	StateAwaitingGeocode
	StateFormOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateAwaitingGeocode:
		return "AwaitingGeocode"
	case StateFormOpen:
		return "FormOpen"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrAlreadyPlaced is returned when a session that has placed its marker
// clicks the map again.
var ErrAlreadyPlaced = errors.New("this session has already placed a marker")

// ErrMissingFields is returned when submit is attempted with an empty name
// or message.
var ErrMissingFields = errors.New("name and message are required")

// ErrNotOpen is returned for submit or cancel outside the FormOpen state.
var ErrNotOpen = errors.New("no placement form is open")

// ErrBusy is returned when the map is clicked while a form is already open.
var ErrBusy = errors.New("a placement is already in progress")

// Geocoder is the reverse-geocode lookup issued on map click.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// Writer persists the submitted marker to the remote store.
type Writer interface {
	CreateMarker(ctx context.Context, req markers.CreateMarkerRequest) (*models.Marker, error)
}

// Flow is the placement state machine: Idle → AwaitingGeocode on click,
// → FormOpen once the geocode resolves or fails, → Idle on submit success or
// cancel. The session store, geocoder, and writer are injected so the flow
// runs identically against fakes and production backends.
//
// Flow is not safe for concurrent use; like the UI it models, it lives on a
// single event loop.
type Flow struct {
	geocoder Geocoder
	writer   Writer
	sessions session.Store

	sessionID string

	state    State
	lat, lng float64
	country  string
	name     string
	message  string
}

func NewFlow(geocoder Geocoder, writer Writer, sessions session.Store, sessionID string) *Flow {
	return &Flow{
		geocoder:  geocoder,
		writer:    writer,
		sessions:  sessions,
		sessionID: sessionID,
		state:     StateIdle,
	}
}

// Click starts a placement at the clicked coordinate. It is refused without
// issuing a geocode when the session has already placed a marker. The
// geocode is issued once and never retried; failure opens the form with
// country "Unknown".
func (f *Flow) Click(ctx context.Context, lat, lng float64) error {
	if f.state != StateIdle {
		return ErrBusy
	}

	if _, placed, err := f.sessions.Get(ctx, f.sessionID, session.PlacedMarkKey); err != nil {
		return fmt.Errorf("read placement flag: %w", err)
	} else if placed {
		return ErrAlreadyPlaced
	}

	f.state = StateAwaitingGeocode
	f.lat, f.lng = lat, lng

	country, err := f.geocoder.Reverse(ctx, lat, lng)
	if err != nil || country == "" {
		if err != nil {
			log.Warn().Err(err).Msg("reverse geocode failed, using Unknown")
		}
		country = markers.UnknownCountry
	}

	f.country = country
	f.state = StateFormOpen
	return nil
}

// SetName edits the form's name field.
func (f *Flow) SetName(name string) { f.name = name }

// SetMessage edits the form's message field.
func (f *Flow) SetMessage(message string) { f.message = message }

// Country is the read-only geocode result shown on the form.
func (f *Flow) Country() string { return f.country }

// State reports the current flow state.
func (f *Flow) State() State { return f.state }

// Submit writes the pending marker. Empty fields are rejected without a
// write; a write failure keeps the form open with fields intact so the user
// can retry. On success the placement flag is set, the form clears, and the
// flow returns to Idle — the new marker reaches the Store only via the feed
// echo, never by optimistic local insert.
func (f *Flow) Submit(ctx context.Context) (*models.Marker, error) {
	if f.state != StateFormOpen {
		return nil, ErrNotOpen
	}
	if f.name == "" || f.message == "" {
		return nil, ErrMissingFields
	}

	marker, err := f.writer.CreateMarker(ctx, markers.CreateMarkerRequest{
		Lat:     f.lat,
		Lng:     f.lng,
		Name:    f.name,
		Message: f.message,
		Country: f.country,
	})
	if err != nil {
		return nil, fmt.Errorf("write marker: %w", err)
	}

	if err := f.sessions.Set(ctx, f.sessionID, session.PlacedMarkKey, "true"); err != nil {
		log.Error().Err(err).Msg("failed to set placement flag")
	}

	f.reset()
	return marker, nil
}

// Cancel discards the pending coordinate and form without writing or
// touching the placement flag.
func (f *Flow) Cancel() error {
	if f.state != StateFormOpen {
		return ErrNotOpen
	}
	f.reset()
	return nil
}

func (f *Flow) reset() {
	f.state = StateIdle
	f.lat, f.lng = 0, 0
	f.country = ""
	f.name = ""
	f.message = ""
}
