package markers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/pinmap/go/internal/models"
)

type fakeRepo struct {
	markers []models.Marker
	err     error
}

func (r *fakeRepo) CreateMarker(ctx context.Context, req CreateMarkerRequest) (*models.Marker, error) {
	if r.err != nil {
		return nil, r.err
	}
	m := models.Marker{
		ID:      uuid.New(),
		Lat:     req.Lat,
		Lng:     req.Lng,
		Name:    req.Name,
		Message: req.Message,
		Country: req.Country,
	}
	r.markers = append(r.markers, m)
	return &m, nil
}

func (r *fakeRepo) GetMarker(ctx context.Context, id uuid.UUID) (*models.Marker, error) {
	for _, m := range r.markers {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *fakeRepo) ListMarkers(ctx context.Context, country string) ([]models.Marker, error) {
	if r.err != nil {
		return nil, r.err
	}
	if country == "" {
		return r.markers, nil
	}
	var out []models.Marker
	for _, m := range r.markers {
		if m.Country == country {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeRepo) CountMarkers(ctx context.Context) (int64, error) {
	return int64(len(r.markers)), nil
}

func validRequest() CreateMarkerRequest {
	return CreateMarkerRequest{Lat: 10, Lng: 20, Name: "Ann", Message: "Hi", Country: "Wakanda"}
}

func TestApp_CreateMarker(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)

	marker, err := app.CreateMarker(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "Ann", marker.Name)
	assert.Equal(t, "Wakanda", marker.Country)
	assert.Len(t, repo.markers, 1)
}

func TestApp_CreateMarker_EmptyCountryBecomesUnknown(t *testing.T) {
	app := NewApp(&fakeRepo{})

	req := validRequest()
	req.Country = ""
	marker, err := app.CreateMarker(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, UnknownCountry, marker.Country)
}

func TestApp_CreateMarker_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateMarkerRequest)
	}{
		{"lat too low", func(r *CreateMarkerRequest) { r.Lat = -91 }},
		{"lat too high", func(r *CreateMarkerRequest) { r.Lat = 90.5 }},
		{"lng too low", func(r *CreateMarkerRequest) { r.Lng = -181 }},
		{"lng too high", func(r *CreateMarkerRequest) { r.Lng = 200 }},
		{"empty name", func(r *CreateMarkerRequest) { r.Name = "" }},
		{"empty message", func(r *CreateMarkerRequest) { r.Message = "" }},
		{"message too long", func(r *CreateMarkerRequest) { r.Message = strings.Repeat("x", MaxMessageLength+1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			app := NewApp(repo)

			req := validRequest()
			tt.mutate(&req)

			_, err := app.CreateMarker(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidMarker)
			assert.Empty(t, repo.markers, "validation failure must not write")
		})
	}
}

func TestApp_CreateMarker_BoundaryCoordinatesAccepted(t *testing.T) {
	app := NewApp(&fakeRepo{})

	req := validRequest()
	req.Lat, req.Lng = -90, 180
	_, err := app.CreateMarker(context.Background(), req)
	require.NoError(t, err)
}

func TestApp_CreateMarker_MessageAtLimitAccepted(t *testing.T) {
	app := NewApp(&fakeRepo{})

	req := validRequest()
	req.Message = strings.Repeat("x", MaxMessageLength)
	_, err := app.CreateMarker(context.Background(), req)
	require.NoError(t, err)
}

func TestApp_CreateMarker_RepoErrorPropagates(t *testing.T) {
	app := NewApp(&fakeRepo{err: errors.New("db down")})

	_, err := app.CreateMarker(context.Background(), validRequest())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidMarker)
}

func TestApp_ListMarkersByCountry(t *testing.T) {
	repo := &fakeRepo{}
	app := NewApp(repo)

	for _, c := range []string{"Japan", "Kenya", "Japan"} {
		req := validRequest()
		req.Country = c
		_, err := app.CreateMarker(context.Background(), req)
		require.NoError(t, err)
	}

	japan, err := app.ListMarkers(context.Background(), "Japan")
	require.NoError(t, err)
	assert.Len(t, japan, 2)

	all, err := app.ListMarkers(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
