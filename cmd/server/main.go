package main // Entry point package

import (
	"log" // Logging library

	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/pkamnerd/movie-booking-locks/internal/config"
	"github.com/pkamnerd/movie-booking-locks/internal/database"
	"github.com/pkamnerd/movie-booking-locks/internal/handler"
	"github.com/pkamnerd/movie-booking-locks/internal/queue"
	"github.com/pkamnerd/movie-booking-locks/internal/redislock"
	"github.com/pkamnerd/movie-booking-locks/internal/repository"
	"github.com/pkamnerd/movie-booking-locks/internal/router"
	"github.com/pkamnerd/movie-booking-locks/internal/validator"
)

func main() {
	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it only the /create/redis strategy is
	// unavailable, the database strategies keep working.
	var locks *redislock.Manager
	if rdb := config.NewRedisClient(); rdb != nil {
		locks = redislock.NewManager(rdb)
	} else {
		log.Print("redis unavailable; /create/redis strategy disabled")
	}

	bookings := repository.NewBookingRepo(db)
	entities := repository.NewEntityRepo(db)
	h := handler.NewBookingHandler(validator.New(entities), bookings, locks)

	// Background consumer appending booking.created events to the log.
	go func() {
		if err := queue.StartBookingConsumer(); err != nil {
			log.Printf("booking consumer stopped: %v", err)
		}
	}()

	e := echo.New()             // Create Echo instance
	router.RegisterRoutes(e, h) // Register application routes

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
