package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Fixture sizes, matching the legacy demo data set.
const (
	seedUsers   = 10
	seedScreens = 3
	seedSeats   = 10 // per screen
)

// Seed wipes and repopulates the master tables: users, screens with
// their seats, and one movie. When withBookings is true it also seeds
// one placeholder booking per (screen, seat) with user_id NULL, which
// the lock-for-update and shared-lock strategies require. The whole
// seed runs in one transaction so a half-seeded database cannot occur.
func Seed(ctx context.Context, db *sql.DB, withBookings bool) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Bookings reference everything else, so they go first.
	for _, table := range []string{"bookings", "seats", "screens", "movies", "users"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	now := time.Now().UTC()
	if err := seedUsersTx(ctx, tx, now); err != nil {
		return err
	}
	if err := seedScreensTx(ctx, tx, now); err != nil {
		return err
	}
	if err := seedMoviesTx(ctx, tx, now); err != nil {
		return err
	}
	if withBookings {
		if err := seedBookingsTx(ctx, tx, now); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func seedUsersTx(ctx context.Context, tx *sql.Tx, now time.Time) error {
	const q = `INSERT INTO users (name, email, created_at, updated_at) VALUES (?, ?, ?, ?)`
	for i := 1; i <= seedUsers; i++ {
		name := fmt.Sprintf("Demo User %02d", i)
		email := fmt.Sprintf("user%02d@example.com", i)
		if _, err := tx.ExecContext(ctx, q, name, email, now, now); err != nil {
			return fmt.Errorf("seed users: %w", err)
		}
	}
	return nil
}

// seedScreensTx creates screens A, B, C each with zero-padded seat
// codes prefixed by the screen code (A01..A10).
func seedScreensTx(ctx context.Context, tx *sql.Tx, now time.Time) error {
	const screenQ = `INSERT INTO screens (code, created_at, updated_at) VALUES (?, ?, ?)`
	const seatQ = `INSERT INTO seats (screen_id, code, created_at, updated_at) VALUES (?, ?, ?, ?)`
	for i := 0; i < seedScreens; i++ {
		code := string(rune('A' + i))
		result, err := tx.ExecContext(ctx, screenQ, code, now, now)
		if err != nil {
			return fmt.Errorf("seed screens: %w", err)
		}
		screenID, err := result.LastInsertId()
		if err != nil {
			return err
		}
		for n := 1; n <= seedSeats; n++ {
			seatCode := fmt.Sprintf("%s%02d", code, n)
			if _, err := tx.ExecContext(ctx, seatQ, screenID, seatCode, now, now); err != nil {
				return fmt.Errorf("seed seats: %w", err)
			}
		}
	}
	return nil
}

func seedMoviesTx(ctx context.Context, tx *sql.Tx, now time.Time) error {
	const q = `INSERT INTO movies (code, title, started_at, ended_at, created_at, updated_at)
               VALUES (?, ?, ?, ?, ?, ?)`
	if _, err := tx.ExecContext(ctx, q,
		"SM2020", "Spider-Man: Far From Home", now, now.Add(time.Hour), now, now); err != nil {
		return fmt.Errorf("seed movies: %w", err)
	}
	return nil
}

// seedBookingsTx inserts one unclaimed placeholder booking per seat for
// the seeded movie.
func seedBookingsTx(ctx context.Context, tx *sql.Tx, now time.Time) error {
	var movieID uint64
	if err := tx.QueryRowContext(ctx, `SELECT id FROM movies ORDER BY id LIMIT 1`).Scan(&movieID); err != nil {
		return fmt.Errorf("seed bookings: %w", err)
	}
	const q = `INSERT INTO bookings (user_id, screen_id, seat_id, movie_id, created_at, updated_at)
               SELECT NULL, screen_id, id, ?, ?, ? FROM seats`
	if _, err := tx.ExecContext(ctx, q, movieID, now, now); err != nil {
		return fmt.Errorf("seed bookings: %w", err)
	}
	return nil
}
