// Package store defines the contract between the concurrency strategies
// and the booking persistence layer. Strategies only ever touch bookings
// through these interfaces; the MySQL implementation lives in the
// repository package and test doubles implement the same contract.
package store

import (
	"context"

	"github.com/pkamnerd/movie-booking-locks/internal/model"
)

// LockMode selects the row-level lock taken by FindBooking.
type LockMode int

const (
	// LockNone reads without any locking clause.
	LockNone LockMode = iota
	// LockExclusive maps to SELECT ... FOR UPDATE. The matched rows
	// stay locked against other exclusive and shared lockers until the
	// transaction ends.
	LockExclusive
	// LockShared maps to SELECT ... LOCK IN SHARE MODE. Concurrent
	// shared readers are allowed; exclusive lockers block.
	LockShared
)

// String returns the SQL suffix for the lock mode, empty for LockNone.
func (m LockMode) String() string {
	switch m {
	case LockExclusive:
		return "FOR UPDATE"
	case LockShared:
		return "LOCK IN SHARE MODE"
	}
	return ""
}

// Tx scopes booking reads and writes to one database transaction. Every
// claim attempt that uses a transaction performs all of its store calls
// on a single Tx and finishes it with exactly one Commit or Rollback.
type Tx interface {
	// FindBooking returns the booking row matching the claim's
	// (movie_id, screen_id, seat_id) triple, locked according to mode,
	// or nil when no row matches.
	FindBooking(ctx context.Context, claim model.SeatClaim, mode LockMode) (*model.Booking, error)
	// InsertBooking creates a claimed booking row for the claim and
	// returns its generated ID.
	InsertBooking(ctx context.Context, claim model.SeatClaim) (uint64, error)
	// UpdateBooking sets user_id on the row matching the claim's triple
	// and returns the number of affected rows.
	UpdateBooking(ctx context.Context, claim model.SeatClaim) (int64, error)
	Commit() error
	Rollback() error
}

// Store is the transactional booking store. The non-transactional
// FindBooking/InsertBooking pair exists for the no-lock strategy, which
// deliberately performs its check and its write as independent
// round-trips.
type Store interface {
	BeginTx(ctx context.Context) (Tx, error)
	FindBooking(ctx context.Context, claim model.SeatClaim, mode LockMode) (*model.Booking, error)
	InsertBooking(ctx context.Context, claim model.SeatClaim) (uint64, error)
}
