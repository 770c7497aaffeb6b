package markers

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	"github.com/mcdev12/pinmap/go/internal/markers/db"
	"github.com/mcdev12/pinmap/go/internal/models"
	"github.com/mcdev12/pinmap/go/internal/sqlutil"
)

// Querier defines what the repository needs from the database layer
type Querier interface {
	CreateMarker(ctx context.Context, arg db.CreateMarkerParams) (db.Marker, error)
	GetMarker(ctx context.Context, id uuid.UUID) (db.Marker, error)
	ListMarkers(ctx context.Context) ([]db.Marker, error)
	ListMarkersByCountry(ctx context.Context, country string) ([]db.Marker, error)
	CountMarkers(ctx context.Context) (int64, error)
}

// Repository implements marker data access operations. The database handle
// is kept alongside the queries so a marker insert and its outbox event
// commit in one transaction.
type Repository struct {
	queries  Querier
	database *sql.DB
}

// NewRepository creates a new markers repository
func NewRepository(querier Querier, database *sql.DB) *Repository {
	return &Repository{
		queries:  querier,
		database: database,
	}
}

// CreateMarker inserts a marker together with its MarkerCreated outbox event.
// The feed pipeline picks the event up via LISTEN/NOTIFY after commit.
func (r *Repository) CreateMarker(ctx context.Context, req CreateMarkerRequest) (*models.Marker, error) {
	var created db.Marker
	err := sqlutil.Run(ctx, r.database,
		func(tx *sql.Tx) *db.Queries { return db.New(tx) },
		func(q *db.Queries) error {
			var err error
			created, err = q.CreateMarker(ctx, db.CreateMarkerParams{
				ID:      uuid.New(),
				Lat:     req.Lat,
				Lng:     req.Lng,
				Name:    req.Name,
				Message: req.Message,
				Country: req.Country,
			})
			if err != nil {
				return fmt.Errorf("failed to create marker: %w", err)
			}

			payload, err := json.Marshal(dbMarkerToModel(created))
			if err != nil {
				return fmt.Errorf("failed to marshal marker payload: %w", err)
			}

			if err := q.InsertOutboxMarkerCreated(ctx, db.InsertOutboxMarkerCreatedParams{
				ID:       uuid.New(),
				MarkerID: created.ID,
				Payload:  pqtype.NullRawMessage{RawMessage: payload, Valid: true},
			}); err != nil {
				return fmt.Errorf("failed to insert MarkerCreated outbox event: %w", err)
			}
			return nil
		})
	if err != nil {
		return nil, err
	}

	m := dbMarkerToModel(created)
	return &m, nil
}

// GetMarker retrieves a marker by ID
func (r *Repository) GetMarker(ctx context.Context, id uuid.UUID) (*models.Marker, error) {
	marker, err := r.queries.GetMarker(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get marker: %w", err)
	}

	m := dbMarkerToModel(marker)
	return &m, nil
}

// ListMarkers retrieves all markers in insertion order. A non-empty country
// narrows the result server-side.
func (r *Repository) ListMarkers(ctx context.Context, country string) ([]models.Marker, error) {
	var rows []db.Marker
	var err error
	if country == "" {
		rows, err = r.queries.ListMarkers(ctx)
	} else {
		rows, err = r.queries.ListMarkersByCountry(ctx, country)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list markers: %w", err)
	}

	out := make([]models.Marker, len(rows))
	for i, row := range rows {
		out[i] = dbMarkerToModel(row)
	}
	return out, nil
}

// CountMarkers returns the total number of placed markers
func (r *Repository) CountMarkers(ctx context.Context) (int64, error) {
	count, err := r.queries.CountMarkers(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count markers: %w", err)
	}
	return count, nil
}

// dbMarkerToModel converts a database marker to the domain model
func dbMarkerToModel(m db.Marker) models.Marker {
	return models.Marker{
		ID:        m.ID,
		Lat:       m.Lat,
		Lng:       m.Lng,
		Name:      m.Name,
		Message:   m.Message,
		Country:   m.Country,
		CreatedAt: m.CreatedAt,
	}
}
