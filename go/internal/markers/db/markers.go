package db

import (
	"context"

	"github.com/google/uuid"
)

const createMarker = `
INSERT INTO markers (id, lat, lng, name, message, country)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, lat, lng, name, message, country, created_at
`

type CreateMarkerParams struct {
	ID      uuid.UUID
	Lat     float64
	Lng     float64
	Name    string
	Message string
	Country string
}

func (q *Queries) CreateMarker(ctx context.Context, arg CreateMarkerParams) (Marker, error) {
	row := q.db.QueryRowContext(ctx, createMarker,
		arg.ID, arg.Lat, arg.Lng, arg.Name, arg.Message, arg.Country)
	var m Marker
	err := row.Scan(&m.ID, &m.Lat, &m.Lng, &m.Name, &m.Message, &m.Country, &m.CreatedAt)
	return m, err
}

const getMarker = `
SELECT id, lat, lng, name, message, country, created_at
FROM markers
WHERE id = $1
`

func (q *Queries) GetMarker(ctx context.Context, id uuid.UUID) (Marker, error) {
	row := q.db.QueryRowContext(ctx, getMarker, id)
	var m Marker
	err := row.Scan(&m.ID, &m.Lat, &m.Lng, &m.Name, &m.Message, &m.Country, &m.CreatedAt)
	return m, err
}

const listMarkers = `
SELECT id, lat, lng, name, message, country, created_at
FROM markers
ORDER BY created_at, id
`

func (q *Queries) ListMarkers(ctx context.Context) ([]Marker, error) {
	rows, err := q.db.QueryContext(ctx, listMarkers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Marker
	for rows.Next() {
		var m Marker
		if err := rows.Scan(&m.ID, &m.Lat, &m.Lng, &m.Name, &m.Message, &m.Country, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const listMarkersByCountry = `
SELECT id, lat, lng, name, message, country, created_at
FROM markers
WHERE country = $1
ORDER BY created_at, id
`

func (q *Queries) ListMarkersByCountry(ctx context.Context, country string) ([]Marker, error) {
	rows, err := q.db.QueryContext(ctx, listMarkersByCountry, country)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Marker
	for rows.Next() {
		var m Marker
		if err := rows.Scan(&m.ID, &m.Lat, &m.Lng, &m.Name, &m.Message, &m.Country, &m.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const countMarkers = `
SELECT count(*) FROM markers
`

func (q *Queries) CountMarkers(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countMarkers)
	var count int64
	err := row.Scan(&count)
	return count, err
}
