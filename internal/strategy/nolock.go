package strategy

import (
	"context"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// NoLock books with a plain check-then-insert and no transaction.
// The check and the insert are separate round-trips with the injected
// pause in between, so concurrent attempts on the same seat can all
// observe "free" and all insert. More than one winner is the expected
// demonstration result, not a bug; this variant is the broken baseline
// the locked variants are measured against.
type NoLock struct {
	Store store.Store
	Delay *delay.Injector
}

func (s *NoLock) Name() string { return string(KindNoLock) }

func (s *NoLock) Attempt(ctx context.Context, claim model.SeatClaim) Outcome {
	existing, err := s.Store.FindBooking(ctx, claim, store.LockNone)
	if err != nil {
		return failed(err)
	}
	if existing != nil {
		return lost()
	}
	// Race window: every other concurrent attempt gets this long to
	// run its own check before we write.
	s.Delay.Wait()
	id, err := s.Store.InsertBooking(ctx, claim)
	if err != nil {
		return failed(err)
	}
	return won(id)
}
