package model

import "time"

// User is a row in the `users` table. Users exist purely so that a
// claim can reference a real requester; there is no credential or
// session handling in this service.
//
// Fields:
//  ID        – primary key identifier.
//  Name      – display name.
//  Email     – unique email address.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type User struct {
	ID        uint64    // users.id
	Name      string    // users.name
	Email     string    // users.email
	CreatedAt time.Time // users.created_at
	UpdatedAt time.Time // users.updated_at
}

// Movie is a row in the `movies` table. Movies are referenced by
// business code (e.g. "SM2020") in requests and by ID internally.
type Movie struct {
	ID        uint64    // movies.id
	Code      string    // movies.code
	Title     string    // movies.title
	StartedAt time.Time // movies.started_at
	EndedAt   time.Time // movies.ended_at
	CreatedAt time.Time // movies.created_at
	UpdatedAt time.Time // movies.updated_at
}

// Screen is a row in the `screens` table. A screen is one auditorium;
// its code (A, B, C ...) prefixes the codes of its seats.
type Screen struct {
	ID        uint64    // screens.id
	Code      string    // screens.code
	CreatedAt time.Time // screens.created_at
	UpdatedAt time.Time // screens.updated_at
}

// Seat is a row in the `seats` table. Seat codes embed the screen
// code followed by a zero-padded number (A01, A02, ...).
type Seat struct {
	ID        uint64    // seats.id
	ScreenID  uint64    // seats.screen_id
	Code      string    // seats.code
	CreatedAt time.Time // seats.created_at
	UpdatedAt time.Time // seats.updated_at
}
