package strategy

import (
	"context"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// LockForUpdate books by taking an exclusive row lock on a pre-seeded
// placeholder booking (user_id NULL) and claiming it with an UPDATE
// while the lock is held. Concurrent attempts on the same seat
// serialize on the row lock: the first to acquire it sees user_id NULL
// and wins, every later one sees the committed user_id and loses.
// This is the recommended variant; it requires the placeholder rows to
// be seeded beforehand.
type LockForUpdate struct {
	Store store.Store
	Delay *delay.Injector
}

func (s *LockForUpdate) Name() string { return string(KindLockForUpdate) }

func (s *LockForUpdate) Attempt(ctx context.Context, claim model.SeatClaim) Outcome {
	tx, err := s.Store.BeginTx(ctx)
	if err != nil {
		return failed(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	// Blocks here until any other exclusive or shared locker on this
	// row finishes its transaction.
	booking, err := tx.FindBooking(ctx, claim, store.LockExclusive)
	if err != nil {
		return failed(err)
	}
	if booking == nil || booking.UserID != nil {
		// No placeholder to claim, or someone claimed it first. The
		// read-only transaction is rolled back by the defer.
		return lost()
	}
	s.Delay.Wait()
	if _, err := tx.UpdateBooking(ctx, claim); err != nil {
		return failed(err)
	}
	if err := tx.Commit(); err != nil {
		return failed(err)
	}
	committed = true
	return won(booking.ID)
}
