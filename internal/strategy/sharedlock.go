package strategy

import (
	"context"
	"errors"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// SharedLock books after taking a shared (read) lock on the booking
// row. Shared locks do not exclude other shared readers, so two
// concurrent attempts can both hold the lock, both proceed and both
// insert; only a unique key on the booking triple would stop the
// second writer, in which case the duplicate-entry error counts as
// losing the race rather than failing.
//
// The locked read's result is discarded and the attempt always
// proceeds as if no booking existed, which reduces this variant to
// NoLock plus an unused lock acquisition. The degenerate form is
// itself instructive and is kept deliberately.
type SharedLock struct {
	Store store.Store
	Delay *delay.Injector
}

func (s *SharedLock) Name() string { return string(KindSharedLock) }

func (s *SharedLock) Attempt(ctx context.Context, claim model.SeatClaim) Outcome {
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
	if _, err := tx.FindBooking(ctx, claim, store.LockShared); err != nil {
		return failed(err)
	}
	// The locked read's result is intentionally ignored; see the type
	// comment.
	s.Delay.Wait()
	id, err := tx.InsertBooking(ctx, claim)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEntry) {
			return lost()
		}
		return failed(err)
	}
	if err := tx.Commit(); err != nil {
		return failed(err)
	}
	committed = true
	return won(id)
}
