package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// BookingRepo is the MySQL implementation of store.Store. All reads
// and writes address the bookings table by the (movie_id, screen_id,
// seat_id) triple; the repository never filters by user so that a seat
// claimed by anyone rejects every later claimant. Timestamps are
// written in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// querier covers *sql.DB and *sql.Tx so the same statement helpers can
// run inside and outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

const findBookingQ = `SELECT id, user_id, screen_id, seat_id, movie_id, created_at, updated_at
FROM bookings
WHERE movie_id = ? AND screen_id = ? AND seat_id = ?`

func findBooking(ctx context.Context, q querier, claim model.SeatClaim, mode store.LockMode) (*model.Booking, error) {
	query := findBookingQ
	if suffix := mode.String(); suffix != "" {
		query += " " + suffix
	}
	var b model.Booking
	var userID sql.NullInt64
	err := q.QueryRowContext(ctx, query, claim.MovieID, claim.ScreenID, claim.SeatID).Scan(
		&b.ID, &userID, &b.ScreenID, &b.SeatID, &b.MovieID, &b.CreatedAt, &b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if userID.Valid {
		uid := uint64(userID.Int64)
		b.UserID = &uid
	}
	return &b, nil
}

const insertBookingQ = `INSERT INTO bookings (user_id, screen_id, seat_id, movie_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`

func insertBooking(ctx context.Context, q querier, claim model.SeatClaim) (uint64, error) {
	now := time.Now().UTC()
	result, err := q.ExecContext(ctx, insertBookingQ,
		claim.UserID, claim.ScreenID, claim.SeatID, claim.MovieID, now, now)
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

const updateBookingQ = `UPDATE bookings SET user_id = ?, updated_at = ?
WHERE movie_id = ? AND screen_id = ? AND seat_id = ?`

func updateBooking(ctx context.Context, q querier, claim model.SeatClaim) (int64, error) {
	result, err := q.ExecContext(ctx, updateBookingQ,
		claim.UserID, time.Now().UTC(), claim.MovieID, claim.ScreenID, claim.SeatID)
	if err != nil {
		return 0, wrapStoreErr(err)
	}
	return result.RowsAffected()
}

// FindBooking reads the booking for a claim outside any transaction.
// The lock mode is accepted for interface completeness but locking a
// row without a surrounding transaction has no effect in MySQL.
func (r *BookingRepo) FindBooking(ctx context.Context, claim model.SeatClaim, mode store.LockMode) (*model.Booking, error) {
	return findBooking(ctx, r.db, claim, mode)
}

// InsertBooking creates a claimed booking row outside any transaction.
func (r *BookingRepo) InsertBooking(ctx context.Context, claim model.SeatClaim) (uint64, error) {
	return insertBooking(ctx, r.db, claim)
}

// BeginTx opens a database transaction and returns it wrapped in the
// store.Tx contract. The caller must finish it with Commit or Rollback.
func (r *BookingRepo) BeginTx(ctx context.Context) (store.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &bookingTx{tx: tx}, nil
}

type bookingTx struct {
	tx *sql.Tx
}

func (t *bookingTx) FindBooking(ctx context.Context, claim model.SeatClaim, mode store.LockMode) (*model.Booking, error) {
	return findBooking(ctx, t.tx, claim, mode)
}

func (t *bookingTx) InsertBooking(ctx context.Context, claim model.SeatClaim) (uint64, error) {
	return insertBooking(ctx, t.tx, claim)
}

func (t *bookingTx) UpdateBooking(ctx context.Context, claim model.SeatClaim) (int64, error) {
	return updateBooking(ctx, t.tx, claim)
}

func (t *bookingTx) Commit() error { return t.tx.Commit() }

func (t *bookingTx) Rollback() error { return t.tx.Rollback() }

// BookingDetail is one row of the booking listing: a claimed booking
// joined with the names and codes of its user, movie, screen and seat.
// Placeholder rows (user_id NULL) are excluded by the inner join on
// users, matching the legacy listing behaviour.
type BookingDetail struct {
	BookingID  uint64    `json:"booking_id"`
	UserID     uint64    `json:"user_id"`
	UserName   string    `json:"user_name"`
	MovieTitle string    `json:"movie_title"`
	ScreenCode string    `json:"screen_code"`
	SeatCode   string    `json:"seat_code"`
	CreatedAt  time.Time `json:"booking_created_at"`
	UpdatedAt  time.Time `json:"booking_updated_at"`
}

// List returns every claimed booking with its related entity names,
// newest first.
func (r *BookingRepo) List(ctx context.Context) ([]BookingDetail, error) {
	const q = `SELECT b.id, u.id, u.name, m.title, sc.code, se.code, b.created_at, b.updated_at
               FROM bookings b
               JOIN users u ON u.id = b.user_id
               JOIN movies m ON m.id = b.movie_id
               JOIN screens sc ON sc.id = b.screen_id
               JOIN seats se ON se.id = b.seat_id
               ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	for rows.Next() {
		var d BookingDetail
		if err := rows.Scan(
			&d.BookingID, &d.UserID, &d.UserName, &d.MovieTitle,
			&d.ScreenCode, &d.SeatCode, &d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
