// Package queue defines message payloads exchanged over the message broker.
package queue

// BookingCreatedEvent is published whenever a claim attempt wins a
// seat, whichever strategy produced the win. It carries the resolved
// claim and the strategy name so downstream consumers can tally wins
// per strategy without querying the primary database.
type BookingCreatedEvent struct {
	BookingID uint64 `json:"booking_id"`
	Strategy  string `json:"strategy"`
	UserID    uint64 `json:"user_id"`
	MovieID   uint64 `json:"movie_id"`
	ScreenID  uint64 `json:"screen_id"`
	SeatID    uint64 `json:"seat_id"`
	CreatedAt string `json:"created_at"`
}
