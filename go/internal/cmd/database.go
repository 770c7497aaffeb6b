package main

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/pinmap/go/internal/dbconfig"
	"github.com/mcdev12/pinmap/go/internal/migrate"
)

func setupDatabase() (*sql.DB, dbconfig.Config, error) {
	dbCfg := dbconfig.NewConfigFromEnv()

	database, err := sql.Open("postgres", dbCfg.DSN())
	if err != nil {
		return nil, dbCfg, fmt.Errorf("failed to create database connection: %w", err)
	}

	if err := database.Ping(); err != nil {
		return nil, dbCfg, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := migrate.EnsureSchema(database); err != nil {
		return nil, dbCfg, fmt.Errorf("failed to ensure schema: %w", err)
	}

	log.Info().
		Str("host", dbCfg.Host).
		Int("port", dbCfg.Port).
		Str("database", dbCfg.Database).
		Msg("connected to database")
	return database, dbCfg, nil
}
