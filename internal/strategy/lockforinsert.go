package strategy

import (
	"context"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// LockForInsert books by taking an exclusive lock on the (normally
// absent) booking row and inserting while the lock is held. With no
// existing row to lock, what each transaction actually holds is a gap
// lock, and gap locks taken by concurrent attempts do not exclude each
// other; when both then insert into the same gap the engine deadlocks
// one of them. That hazard is the documented property of this variant;
// it is kept for comparison against LockForUpdate, not recommended.
// The pause runs before the existence decision to maximise the window
// in which competing transactions hold their gap locks.
type LockForInsert struct {
	Store store.Store
	Delay *delay.Injector
}

func (s *LockForInsert) Name() string { return string(KindLockForInsert) }

func (s *LockForInsert) Attempt(ctx context.Context, claim model.SeatClaim) Outcome {
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
	booking, err := tx.FindBooking(ctx, claim, store.LockExclusive)
	if err != nil {
		return failed(err)
	}
	s.Delay.Wait()
	if booking != nil {
		return lost()
	}
	id, err := tx.InsertBooking(ctx, claim)
	if err != nil {
		return failed(err)
	}
	if err := tx.Commit(); err != nil {
		return failed(err)
	}
	committed = true
	return won(id)
}
