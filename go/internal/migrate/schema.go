package migrate

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EnsureSchema creates the marker tables and the outbox notify trigger on
// first run. Statements are idempotent so restarts are safe.
func EnsureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS markers (
			id UUID PRIMARY KEY,
			lat DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
			lng DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180),
			name TEXT NOT NULL,
			message TEXT NOT NULL CHECK (char_length(message) <= 100),
			country TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_markers_country ON markers(country)`,
		`CREATE INDEX IF NOT EXISTS idx_markers_created_at ON markers(created_at)`,
		`CREATE TABLE IF NOT EXISTS marker_outbox (
			id UUID PRIMARY KEY,
			marker_id UUID NOT NULL REFERENCES markers(id),
			event_type TEXT NOT NULL,
			payload JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			sent_at TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_marker_outbox_unsent ON marker_outbox(created_at) WHERE sent_at IS NULL`,
		`CREATE OR REPLACE FUNCTION notify_marker_outbox() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('marker_outbox_events', NEW.id::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql`,
		`DROP TRIGGER IF EXISTS marker_outbox_notify ON marker_outbox`,
		`CREATE TRIGGER marker_outbox_notify
			AFTER INSERT ON marker_outbox
			FOR EACH ROW EXECUTE FUNCTION notify_marker_outbox()`,
	}

	for i, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	log.Info().Msg("database schema ensured")
	return nil
}
