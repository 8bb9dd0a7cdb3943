// Command weather-initdb creates the database schema and seeds the default
// city list. Safe to run repeatedly.
package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jkalnins/weather-dashboard/internal/config"
	"github.com/jkalnins/weather-dashboard/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgStore := store.NewPostgresStore(db)

	log.Println("initializing database schema")
	if err := pgStore.InitSchema(ctx); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}

	log.Println("seeding default cities")
	if err := pgStore.SeedDefaultCities(ctx); err != nil {
		log.Fatalf("failed to seed cities: %v", err)
	}

	log.Println("database initialization complete")
}
