package markers

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/models"
)

// MarkersRepository defines what the app layer needs from the repository
type MarkersRepository interface {
	CreateMarker(ctx context.Context, req CreateMarkerRequest) (*models.Marker, error)
	GetMarker(ctx context.Context, id uuid.UUID) (*models.Marker, error)
	ListMarkers(ctx context.Context, country string) ([]models.Marker, error)
	CountMarkers(ctx context.Context) (int64, error)
}

// App handles marker business logic
type App struct {
	repo MarkersRepository
}

// NewApp creates a new markers App
func NewApp(repo MarkersRepository) *App {
	return &App{
		repo: repo,
	}
}

// CreateMarker validates and persists a new marker. The country field is
// read-only output from geocoding; an empty value is recorded as Unknown
// rather than rejected.
func (a *App) CreateMarker(ctx context.Context, req CreateMarkerRequest) (*models.Marker, error) {
	if req.Country == "" {
		req.Country = UnknownCountry
	}
	if err := a.validateCreateMarkerRequest(req); err != nil {
		return nil, err
	}

	marker, err := a.repo.CreateMarker(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create marker: %w", err)
	}

	log.Info().
		Str("marker_id", marker.ID.String()).
		Str("country", marker.Country).
		Msg("marker placed")
	return marker, nil
}

// GetMarker retrieves a marker by ID
func (a *App) GetMarker(ctx context.Context, id uuid.UUID) (*models.Marker, error) {
	marker, err := a.repo.GetMarker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get marker: %w", err)
	}
	return marker, nil
}

// ListMarkers retrieves all markers, optionally narrowed to one country
func (a *App) ListMarkers(ctx context.Context, country string) ([]models.Marker, error) {
	list, err := a.repo.ListMarkers(ctx, country)
	if err != nil {
		return nil, fmt.Errorf("failed to list markers: %w", err)
	}
	return list, nil
}

// CountMarkers returns the total number of placed markers
func (a *App) CountMarkers(ctx context.Context) (int64, error) {
	return a.repo.CountMarkers(ctx)
}

func (a *App) validateCreateMarkerRequest(req CreateMarkerRequest) error {
	if req.Lat < -90 || req.Lat > 90 {
		return fmt.Errorf("%w: lat %v out of range", ErrInvalidMarker, req.Lat)
	}
	if req.Lng < -180 || req.Lng > 180 {
		return fmt.Errorf("%w: lng %v out of range", ErrInvalidMarker, req.Lng)
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidMarker)
	}
	if req.Message == "" {
		return fmt.Errorf("%w: message is required", ErrInvalidMarker)
	}
	if len([]rune(req.Message)) > MaxMessageLength {
		return fmt.Errorf("%w: message exceeds %d characters", ErrInvalidMarker, MaxMessageLength)
	}
	return nil
}
