package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mcdev12/pinmap/go/internal/dbconfig"
)

// seed_markers drops a handful of demo pins so a fresh map is not empty.
// Run it once against a dev database after the server has created the schema.

type seedMarker struct {
	Lat     float64
	Lng     float64
	Name    string
	Message string
	Country string
}

var seeds = []seedMarker{
	{48.8566, 2.3522, "Camille", "Bonjour depuis Paris!", "France"},
	{35.6762, 139.6503, "Yuki", "Hello from Tokyo", "Japan"},
	{-33.8688, 151.2093, "Sam", "G'day!", "Australia"},
	{40.7128, -74.0060, "Alex", "Greetings from NYC", "United States"},
	{-1.2921, 36.8219, "Wanjiru", "Karibu Nairobi", "Kenya"},
}

func main() {
	cfg := dbconfig.NewConfigFromEnv()
	pool, err := pgxpool.New(context.Background(), cfg.DSN())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var inserted, errs int
	for _, m := range seeds {
		_, err := pool.Exec(context.Background(), `
            INSERT INTO markers (id, lat, lng, name, message, country)
            VALUES ($1,$2,$3,$4,$5,$6)
        `,
			uuid.New(), m.Lat, m.Lng, m.Name, m.Message, m.Country,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "insert %s: %v\n", m.Name, err)
			errs++
			continue
		}
		inserted++
	}

	fmt.Printf("seeded %d markers (%d errors)\n", inserted, errs)
	if errs > 0 {
		os.Exit(1)
	}
}
