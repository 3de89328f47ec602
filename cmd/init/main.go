// Command init prepares the database for the booking demo: it applies
// the schema migrations and optionally seeds the master data and the
// placeholder bookings that the lock-for-update and shared-lock
// strategies claim against.
//
// Usage:
//
//	init               apply pending migrations
//	init -refresh      roll back and re-apply all migrations first
//	init -seed         reseed users, screens, seats and the movie
//	init -seed -booking  additionally seed one placeholder booking per seat
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/pkamnerd/movie-booking-locks/internal/config"
	"github.com/pkamnerd/movie-booking-locks/internal/database"
)

func main() {
	refresh := flag.Bool("refresh", false, "drop and recreate the schema")
	seed := flag.Bool("seed", false, "seed users, screens, seats and movies")
	booking := flag.Bool("booking", false, "seed placeholder bookings (implies -seed data present)")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	migrationsPath := os.Getenv("MIGRATIONS_PATH")
	if migrationsPath == "" {
		migrationsPath = "migrations"
	}

	if *refresh {
		if err := database.Reset(db, migrationsPath); err != nil {
			log.Fatalf("refresh schema: %v", err)
		}
		log.Print("schema refreshed")
	} else {
		if err := database.Migrate(db, migrationsPath); err != nil {
			log.Fatalf("migrate schema: %v", err)
		}
		log.Print("schema migrated")
	}

	if *seed || *booking {
		if err := database.Seed(context.Background(), db, *booking); err != nil {
			log.Fatalf("seed data: %v", err)
		}
		if *booking {
			log.Print("seeded master data and placeholder bookings")
		} else {
			log.Print("seeded master data")
		}
	}
}
