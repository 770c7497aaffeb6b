package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/clients/nominatim"
	"github.com/mcdev12/pinmap/go/internal/dbconfig"
	"github.com/mcdev12/pinmap/go/internal/markers"
	"github.com/mcdev12/pinmap/go/internal/markers/db"
	"github.com/mcdev12/pinmap/go/internal/markers/gateway"
	"github.com/mcdev12/pinmap/go/internal/markers/outbox"
	"github.com/mcdev12/pinmap/go/internal/session"
)

type Services struct {
	Markers  *markers.Service
	Gateway  *gateway.Service
	Listener *outbox.Listener
}

func setupServices(ctx context.Context, database *sql.DB, dbCfg dbconfig.Config) (*Services, error) {
	// Wire up dependency injection chain
	// Database layer → Repository layer → App layer → Service layer

	queries := db.New(database)
	markersRepo := markers.NewRepository(queries, database)
	markersApp := markers.NewApp(markersRepo)

	sessions, err := setupSessionStore(ctx)
	if err != nil {
		return nil, err
	}

	geocoder := nominatim.NewNominatimClient(getEnv("GEOCODER_BASE_URL", ""))
	geocoder.SetTimeout(10 * time.Second)

	markersService := markers.NewService(markersApp, sessions, geocoder)

	// Feed pipeline: outbox → NATS → websocket gateway
	natsURL := getEnv("NATS_URL", "nats://localhost:4222")

	publisherCfg := outbox.DefaultJetStreamConfig()
	publisherCfg.URL = natsURL
	var publisher outbox.Publisher
	publisher, err = outbox.NewJetStreamPublisher(publisherCfg)
	if err != nil {
		log.Warn().Err(err).Msg("broker unavailable, outbox events will only be logged")
		publisher = outbox.NewLogPublisher()
	}

	listenerCfg := outbox.DefaultListenerConfig()
	listenerCfg.DatabaseURL = dbCfg.DSN()
	listener, err := outbox.NewListener(database, publisher, clockwork.NewRealClock(), listenerCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create outbox listener: %w", err)
	}

	gatewayCfg := gateway.DefaultConfig()
	gatewayCfg.JetStreamConfig.URL = natsURL
	feedGateway := gateway.NewService(gatewayCfg)

	return &Services{
		Markers:  markersService,
		Gateway:  feedGateway,
		Listener: listener,
	}, nil
}

func setupSessionStore(ctx context.Context) (session.Store, error) {
	addr := getEnv("REDIS_ADDR", "")
	if addr == "" {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory session store")
		return session.NewMemoryStore(), nil
	}

	client, err := session.OpenRedis(ctx, addr, getEnv("REDIS_PASSWORD", ""), getEnvAsInt("REDIS_DB", 0))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", addr).Msg("connected to redis session store")
	return session.NewRedisStore(client, session.DefaultSessionTTL), nil
}
