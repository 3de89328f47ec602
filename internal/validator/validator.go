// Package validator turns raw reservation requests into validated seat
// claims. Validation happens before any strategy runs: a request that
// fails here never opens a transaction or touches the bookings table.
package validator

import (
	"context"
	"errors"

	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/repository"
)

// Reasons a request can be rejected.
const (
	ReasonMissingFields = "missing_fields"
	ReasonNotFound      = "not_found"
)

// Messages mirror the legacy API so existing clients keep working.
const (
	msgMissingFields = "Required parameters is not set."
	msgNotFound      = "Database records is not existing."
)

// Error describes a rejected request. Reason is machine-readable,
// Message is what goes into the response body.
type Error struct {
	Reason  string
	Message string
}

func (e *Error) Error() string { return e.Message }

// AsError returns the validation error inside err, or nil when err is
// some other failure (e.g. the lookup queries themselves failed).
func AsError(err error) *Error {
	var ve *Error
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

// Request is the raw claim payload as posted by the client.
type Request struct {
	UserID     uint64 `json:"user_id"`
	MovieCode  string `json:"movie_code"`
	ScreenCode string `json:"screen_code"`
	SeatCode   string `json:"seat_code"`
}

// ClaimValidator checks field presence and resolves each business code
// against its entity table.
type ClaimValidator struct {
	entities *repository.EntityRepo
}

// New returns a ClaimValidator backed by the given entity resolver.
func New(entities *repository.EntityRepo) *ClaimValidator {
	if entities == nil {
		panic("nil entity repo passed to validator.New")
	}
	return &ClaimValidator{entities: entities}
}

// Validate returns the resolved claim for a request. user_id,
// screen_code and seat_code are required; movie_code is optional and,
// as in the legacy service, an unresolved movie leaves MovieID at
// zero rather than rejecting the request (the foreign key catches it
// at write time).
func (v *ClaimValidator) Validate(ctx context.Context, req Request) (model.SeatClaim, error) {
	var claim model.SeatClaim
	if req.UserID == 0 || req.ScreenCode == "" || req.SeatCode == "" {
		return claim, &Error{Reason: ReasonMissingFields, Message: msgMissingFields}
	}
	userID, err := v.entities.ResolveUser(ctx, req.UserID)
	if err != nil {
		return claim, err
	}
	movieID, err := v.entities.ResolveMovie(ctx, req.MovieCode)
	if err != nil {
		return claim, err
	}
	screenID, err := v.entities.ResolveScreen(ctx, req.ScreenCode)
	if err != nil {
		return claim, err
	}
	seatID, err := v.entities.ResolveSeat(ctx, req.SeatCode)
	if err != nil {
		return claim, err
	}
	if userID == 0 || screenID == 0 || seatID == 0 {
		return claim, &Error{Reason: ReasonNotFound, Message: msgNotFound}
	}
	claim = model.SeatClaim{
		UserID:   userID,
		MovieID:  movieID,
		ScreenID: screenID,
		SeatID:   seatID,
	}
	return claim, nil
}
