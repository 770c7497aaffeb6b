package gateway

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// Service is the marker feed gateway: it owns the websocket connections and
// the JetStream consumer feeding them.
type Service struct {
	connectionManager *ConnectionManager
	wsHandler         *WebSocketHandler
	eventConsumer     *EventConsumer
}

// Config holds configuration for the feed gateway service
type Config struct {
	ConnectionConfig ConnectionConfig
	JetStreamConfig  JetStreamConsumerConfig
}

// DefaultConfig returns default configuration for the feed gateway
func DefaultConfig() Config {
	return Config{
		ConnectionConfig: DefaultConnectionConfig(),
		JetStreamConfig:  DefaultJetStreamConsumerConfig(),
	}
}

// NewService creates a new feed gateway service. When the broker is
// unreachable the service still accepts websocket connections; clients just
// see no events until a restart with a working broker.
func NewService(config Config) *Service {
	connectionManager := NewConnectionManager(config.ConnectionConfig)
	wsHandler := NewWebSocketHandler(connectionManager)

	eventConsumer, err := NewEventConsumer(connectionManager, config.JetStreamConfig)
	if err != nil {
		log.Warn().Err(err).Msg("broker unavailable, feed will carry no events")
		eventConsumer = nil
	}

	return &Service{
		connectionManager: connectionManager,
		wsHandler:         wsHandler,
		eventConsumer:     eventConsumer,
	}
}

// Start runs the gateway until the context is cancelled
func (s *Service) Start(ctx context.Context) error {
	log.Info().Msg("starting marker feed gateway")

	go s.connectionManager.Start(ctx)

	if s.eventConsumer != nil {
		go func() {
			if err := s.eventConsumer.Start(ctx); err != nil {
				log.Error().Err(err).Msg("event consumer failed")
			}
		}()
	}

	<-ctx.Done()

	log.Info().Msg("marker feed gateway shutting down")
	return s.Stop()
}

// Stop gracefully shuts down the gateway service
func (s *Service) Stop() error {
	if s.eventConsumer != nil {
		if err := s.eventConsumer.Stop(); err != nil {
			log.Error().Err(err).Msg("failed to stop event consumer")
		}
	}
	log.Info().Msg("marker feed gateway stopped")
	return nil
}

// RegisterRoutes registers the websocket HTTP routes
func (s *Service) RegisterRoutes(mux *http.ServeMux) {
	s.wsHandler.RegisterRoutes(mux)
	log.Info().Msg("marker feed routes registered")
}

// Broadcast pushes an event to connected clients directly, bypassing the
// broker. Useful in tests and single-node runs.
func (s *Service) Broadcast(event *MarkerEvent) {
	s.connectionManager.Broadcast(event)
}
