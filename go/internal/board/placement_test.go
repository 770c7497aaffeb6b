package board

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pinmap/go/internal/markers"
	"github.com/mcdev12/pinmap/go/internal/models"
	"github.com/mcdev12/pinmap/go/internal/session"
)

type fakeGeocoder struct {
	country string
	err     error
	calls   int
}

func (g *fakeGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	g.calls++
	return g.country, g.err
}

type fakeWriter struct {
	err      error
	requests []markers.CreateMarkerRequest
}

func (w *fakeWriter) CreateMarker(ctx context.Context, req markers.CreateMarkerRequest) (*models.Marker, error) {
	if w.err != nil {
		return nil, w.err
	}
	w.requests = append(w.requests, req)
	return &models.Marker{
		ID:      uuid.New(),
		Lat:     req.Lat,
		Lng:     req.Lng,
		Name:    req.Name,
		Message: req.Message,
		Country: req.Country,
	}, nil
}

func newTestFlow(t *testing.T, geocoder *fakeGeocoder, writer *fakeWriter) (*Flow, *session.MemoryStore) {
	t.Helper()
	sessions := session.NewMemoryStore()
	return NewFlow(geocoder, writer, sessions, "session-1"), sessions
}

func placedFlag(t *testing.T, sessions *session.MemoryStore) bool {
	t.Helper()
	_, placed, err := sessions.Get(context.Background(), "session-1", session.PlacedMarkKey)
	require.NoError(t, err)
	return placed
}

func TestFlow_ClickOpensFormWithGeocodedCountry(t *testing.T) {
	geocoder := &fakeGeocoder{country: "Wakanda"}
	flow, _ := newTestFlow(t, geocoder, &fakeWriter{})

	require.NoError(t, flow.Click(context.Background(), 10, 20))

	assert.Equal(t, StateFormOpen, flow.State())
	assert.Equal(t, "Wakanda", flow.Country())
	assert.Equal(t, 1, geocoder.calls)
}

func TestFlow_GeocodeFailureFallsBackToUnknown(t *testing.T) {
	geocoder := &fakeGeocoder{err: errors.New("network down")}
	flow, _ := newTestFlow(t, geocoder, &fakeWriter{})

	require.NoError(t, flow.Click(context.Background(), 10, 20))

	assert.Equal(t, StateFormOpen, flow.State())
	assert.Equal(t, "Unknown", flow.Country())
}

func TestFlow_EmptyCountryFallsBackToUnknown(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeGeocoder{country: ""}, &fakeWriter{})

	require.NoError(t, flow.Click(context.Background(), 10, 20))
	assert.Equal(t, "Unknown", flow.Country())
}

func TestFlow_SubmitWritesMarkerAndSetsFlag(t *testing.T) {
	writer := &fakeWriter{}
	flow, sessions := newTestFlow(t, &fakeGeocoder{country: "Wakanda"}, writer)

	require.NoError(t, flow.Click(context.Background(), 10, 20))
	flow.SetName("Ann")
	flow.SetMessage("Hi")

	marker, err := flow.Submit(context.Background())
	require.NoError(t, err)

	require.Len(t, writer.requests, 1)
	assert.Equal(t, markers.CreateMarkerRequest{
		Lat: 10, Lng: 20, Name: "Ann", Message: "Hi", Country: "Wakanda",
	}, writer.requests[0])
	assert.Equal(t, "Wakanda", marker.Country)
	assert.Equal(t, StateIdle, flow.State())
	assert.True(t, placedFlag(t, sessions))
}

func TestFlow_SubmitSucceedsWithUnknownCountry(t *testing.T) {
	writer := &fakeWriter{}
	flow, _ := newTestFlow(t, &fakeGeocoder{err: errors.New("boom")}, writer)

	require.NoError(t, flow.Click(context.Background(), 10, 20))
	flow.SetName("Ann")
	flow.SetMessage("Hi")

	_, err := flow.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, writer.requests, 1)
	assert.Equal(t, "Unknown", writer.requests[0].Country)
}

func TestFlow_EmptyFieldsNeverWriteNorSetFlag(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		message string
	}{
		{"empty name", "", "Hi"},
		{"empty message", "Ann", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writer := &fakeWriter{}
			flow, sessions := newTestFlow(t, &fakeGeocoder{country: "Japan"}, writer)

			require.NoError(t, flow.Click(context.Background(), 1, 2))
			flow.SetName(tt.field)
			flow.SetMessage(tt.message)

			_, err := flow.Submit(context.Background())
			require.ErrorIs(t, err, ErrMissingFields)

			assert.Empty(t, writer.requests)
			assert.False(t, placedFlag(t, sessions))
			assert.Equal(t, StateFormOpen, flow.State())
		})
	}
}

func TestFlow_WriteFailureKeepsFormAndFlag(t *testing.T) {
	writer := &fakeWriter{err: errors.New("store down")}
	flow, sessions := newTestFlow(t, &fakeGeocoder{country: "Japan"}, writer)

	require.NoError(t, flow.Click(context.Background(), 1, 2))
	flow.SetName("Ann")
	flow.SetMessage("Hi")

	_, err := flow.Submit(context.Background())
	require.Error(t, err)

	// Form stays open with fields intact so the user can retry
	assert.Equal(t, StateFormOpen, flow.State())
	assert.Equal(t, "Japan", flow.Country())
	assert.False(t, placedFlag(t, sessions))

	// Retry succeeds once the store recovers
	writer.err = nil
	_, err = flow.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []markers.CreateMarkerRequest{
		{Lat: 1, Lng: 2, Name: "Ann", Message: "Hi", Country: "Japan"},
	}, writer.requests)
	assert.True(t, placedFlag(t, sessions))
}

func TestFlow_SecondPlacementRefusedWithoutGeocode(t *testing.T) {
	geocoder := &fakeGeocoder{country: "Japan"}
	writer := &fakeWriter{}
	flow, _ := newTestFlow(t, geocoder, writer)

	require.NoError(t, flow.Click(context.Background(), 1, 2))
	flow.SetName("Ann")
	flow.SetMessage("Hi")
	_, err := flow.Submit(context.Background())
	require.NoError(t, err)

	err = flow.Click(context.Background(), 3, 4)
	require.ErrorIs(t, err, ErrAlreadyPlaced)

	// Refusal happens before any geocode or write is issued
	assert.Equal(t, 1, geocoder.calls)
	assert.Len(t, writer.requests, 1)
	assert.Equal(t, StateIdle, flow.State())
}

func TestFlow_GuardHoldsAcrossFlowsOfSameSession(t *testing.T) {
	sessions := session.NewMemoryStore()
	first := NewFlow(&fakeGeocoder{country: "Japan"}, &fakeWriter{}, sessions, "s")

	require.NoError(t, first.Click(context.Background(), 1, 2))
	first.SetName("Ann")
	first.SetMessage("Hi")
	_, err := first.Submit(context.Background())
	require.NoError(t, err)

	// A new flow for the same session (e.g. page reload) stays guarded
	second := NewFlow(&fakeGeocoder{country: "Japan"}, &fakeWriter{}, sessions, "s")
	require.ErrorIs(t, second.Click(context.Background(), 1, 2), ErrAlreadyPlaced)
}

func TestFlow_CancelDiscardsFormWithoutWriting(t *testing.T) {
	writer := &fakeWriter{}
	flow, sessions := newTestFlow(t, &fakeGeocoder{country: "Japan"}, writer)

	require.NoError(t, flow.Click(context.Background(), 1, 2))
	flow.SetName("Ann")
	flow.SetMessage("Hi")
	require.NoError(t, flow.Cancel())

	assert.Equal(t, StateIdle, flow.State())
	assert.Empty(t, writer.requests)
	assert.False(t, placedFlag(t, sessions))

	// Cancelling did not consume the placement
	require.NoError(t, flow.Click(context.Background(), 5, 6))
}

func TestFlow_ClickWhileFormOpenIsRefused(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeGeocoder{country: "Japan"}, &fakeWriter{})

	require.NoError(t, flow.Click(context.Background(), 1, 2))
	require.ErrorIs(t, flow.Click(context.Background(), 3, 4), ErrBusy)
}

func TestFlow_SubmitAndCancelRequireOpenForm(t *testing.T) {
	flow, _ := newTestFlow(t, &fakeGeocoder{}, &fakeWriter{})

	_, err := flow.Submit(context.Background())
	require.ErrorIs(t, err, ErrNotOpen)
	require.ErrorIs(t, flow.Cancel(), ErrNotOpen)
}
