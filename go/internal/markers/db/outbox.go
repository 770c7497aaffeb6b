package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"
)

const insertOutboxMarkerCreated = `
INSERT INTO marker_outbox (id, marker_id, event_type, payload)
VALUES ($1, $2, 'MarkerCreated', $3)
`

type InsertOutboxMarkerCreatedParams struct {
	ID       uuid.UUID
	MarkerID uuid.UUID
	Payload  pqtype.NullRawMessage
}

func (q *Queries) InsertOutboxMarkerCreated(ctx context.Context, arg InsertOutboxMarkerCreatedParams) error {
	_, err := q.db.ExecContext(ctx, insertOutboxMarkerCreated, arg.ID, arg.MarkerID, arg.Payload)
	return err
}

const fetchOutboxByID = `
SELECT id, marker_id, event_type, payload, created_at, sent_at
FROM marker_outbox
WHERE id = $1 AND sent_at IS NULL
`

func (q *Queries) FetchOutboxByID(ctx context.Context, id uuid.UUID) (MarkerOutbox, error) {
	row := q.db.QueryRowContext(ctx, fetchOutboxByID, id)
	var o MarkerOutbox
	err := row.Scan(&o.ID, &o.MarkerID, &o.EventType, &o.Payload, &o.CreatedAt, &o.SentAt)
	return o, err
}

const fetchUnsentOutbox = `
SELECT id, marker_id, event_type, payload, created_at, sent_at
FROM marker_outbox
WHERE sent_at IS NULL
ORDER BY created_at
LIMIT $1
`

func (q *Queries) FetchUnsentOutbox(ctx context.Context, limit int32) ([]MarkerOutbox, error) {
	rows, err := q.db.QueryContext(ctx, fetchUnsentOutbox, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []MarkerOutbox
	for rows.Next() {
		var o MarkerOutbox
		if err := rows.Scan(&o.ID, &o.MarkerID, &o.EventType, &o.Payload, &o.CreatedAt, &o.SentAt); err != nil {
			return nil, err
		}
		items = append(items, o)
	}
	return items, rows.Err()
}

const markOutboxSent = `
UPDATE marker_outbox SET sent_at = now() WHERE id = $1
`

func (q *Queries) MarkOutboxSent(ctx context.Context, id uuid.UUID) error {
	_, err := q.db.ExecContext(ctx, markOutboxSent, id)
	return err
}
