package markers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/models"
	"github.com/mcdev12/pinmap/go/internal/session"
)

// MarkersApp defines what the service layer needs from the markers application
type MarkersApp interface {
	CreateMarker(ctx context.Context, req CreateMarkerRequest) (*models.Marker, error)
	GetMarker(ctx context.Context, id uuid.UUID) (*models.Marker, error)
	ListMarkers(ctx context.Context, country string) ([]models.Marker, error)
	CountMarkers(ctx context.Context) (int64, error)
}

// Geocoder resolves a coordinate to a country name, falling back to Unknown.
type Geocoder interface {
	ReverseCountry(ctx context.Context, lat, lng float64) string
}

// Service exposes the marker JSON API to browsers. Placement is once per
// session: the guard is checked before the write and the flag is set only
// after the insert commits.
type Service struct {
	app      MarkersApp
	sessions session.Store
	geocoder Geocoder
}

// NewService creates a new markers HTTP service
func NewService(app MarkersApp, sessions session.Store, geocoder Geocoder) *Service {
	return &Service{
		app:      app,
		sessions: sessions,
		geocoder: geocoder,
	}
}

// RegisterRoutes registers the marker API routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/markers", s.handleListMarkers)
	mux.HandleFunc("POST /api/markers", s.handleCreateMarker)
	mux.HandleFunc("GET /api/geocode/reverse", s.handleReverseGeocode)
	log.Info().Msg("marker API routes registered")
}

func (s *Service) handleListMarkers(w http.ResponseWriter, r *http.Request) {
	markers, err := s.app.ListMarkers(r.Context(), r.URL.Query().Get("country"))
	if err != nil {
		log.Error().Err(err).Msg("failed to list markers")
		writeError(w, http.StatusServiceUnavailable, "marker store unavailable")
		return
	}
	if markers == nil {
		markers = []models.Marker{}
	}
	writeJSON(w, http.StatusOK, markers)
}

func (s *Service) handleCreateMarker(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusBadRequest, "no session")
		return
	}

	if _, placed, err := s.sessions.Get(r.Context(), sessionID, session.PlacedMarkKey); err != nil {
		log.Error().Err(err).Msg("failed to read placement flag")
		writeError(w, http.StatusServiceUnavailable, "session store unavailable")
		return
	} else if placed {
		writeError(w, http.StatusConflict, "this session has already placed a marker")
		return
	}

	var req CreateMarkerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	marker, err := s.app.CreateMarker(r.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidMarker) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error().Err(err).Msg("failed to create marker")
		writeError(w, http.StatusServiceUnavailable, "marker store unavailable")
		return
	}

	// Guard flag is written only after a successful insert so a store
	// failure leaves the session free to retry.
	if err := s.sessions.Set(r.Context(), sessionID, session.PlacedMarkKey, "true"); err != nil {
		log.Error().Err(err).Str("session_id", sessionID).Msg("failed to set placement flag")
	}

	writeJSON(w, http.StatusCreated, marker)
}

func (s *Service) handleReverseGeocode(w http.ResponseWriter, r *http.Request) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		writeError(w, http.StatusBadRequest, "lat and lng are required")
		return
	}

	// Failures are masked as Unknown so the placement flow never stalls on
	// the third-party geocoder.
	country := s.geocoder.ReverseCountry(r.Context(), lat, lng)
	writeJSON(w, http.StatusOK, map[string]string{"country": country})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
