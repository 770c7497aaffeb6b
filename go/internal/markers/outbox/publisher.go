package outbox

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Publisher is the sink the listener drains outbox events into.
type Publisher interface {
	Publish(ctx context.Context, event OutboxEvent) error
}

// LogPublisher logs events instead of publishing them. Used in development
// when no broker is running; connected clients simply see no live feed.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event OutboxEvent) error {
	log.Info().
		Str("event_id", event.ID.String()).
		Str("event_type", event.EventType).
		Str("marker_id", event.MarkerID.String()).
		Msg("publishing event")
	return nil
}
