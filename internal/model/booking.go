package model

import "time"

// Booking is a row in the `bookings` table. Depending on the strategy
// exercising the table it is used in one of two ways: either a
// placeholder row is seeded per (screen, seat, movie) with a NULL
// user_id and claiming sets the user, or no row exists up front and
// claiming inserts one. In both layouts a booking with a non-nil
// UserID (or, in the insert layout, the mere presence of the row)
// means the seat is taken.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – user who claimed the seat; nil while unclaimed.
//  ScreenID  – screen the seat belongs to.
//  SeatID    – the contested seat.
//  MovieID   – movie showing on that screen.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Booking struct {
	ID        uint64    // bookings.id
	UserID    *uint64   // bookings.user_id (nullable)
	ScreenID  uint64    // bookings.screen_id
	SeatID    uint64    // bookings.seat_id
	MovieID   uint64    // bookings.movie_id
	CreatedAt time.Time // bookings.created_at
	UpdatedAt time.Time // bookings.updated_at
}

// Claimed reports whether the booking row denotes a taken seat.
func (b *Booking) Claimed() bool { return b != nil && b.UserID != nil }

// SeatClaim identifies one attempt to take a seat: who wants it and
// which (movie, screen, seat) triple is being contested. All IDs are
// internal primary keys resolved by the validator; a claim is never
// constructed from raw request codes directly. Claims are passed by
// value and never mutated.
type SeatClaim struct {
	UserID   uint64 `json:"user_id"`
	MovieID  uint64 `json:"movie_id"`
	ScreenID uint64 `json:"screen_id"`
	SeatID   uint64 `json:"seat_id"`
}
