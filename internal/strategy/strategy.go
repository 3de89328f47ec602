// Package strategy contains the concurrency-control strategies that
// decide, for a burst of simultaneous claims on the same seat, which
// single claim wins. Each variant takes a different approach to the
// interval between checking availability and writing the booking; the
// delay injector stretches that interval so the differences are
// observable. Only the exclusive-lock variants guarantee a single
// winner; the no-lock and shared-lock variants intentionally do not,
// which is the point of the comparison.
package strategy

import (
	"context"
	"fmt"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/redislock"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// Result classifies the terminal state of one claim attempt.
type Result int

const (
	// ResultWon means this attempt created or claimed the booking.
	ResultWon Result = iota
	// ResultLost means the seat was already taken, or another attempt
	// held the resource. Losing is a normal outcome, not an error.
	ResultLost
	// ResultFailed means the attempt aborted on an error; any open
	// transaction was rolled back.
	ResultFailed
)

// Outcome is what an attempt reports back to the controller. BookingID
// is set for ResultWon, Err for ResultFailed.
type Outcome struct {
	Result    Result
	BookingID uint64
	Err       error
}

func won(id uint64) Outcome    { return Outcome{Result: ResultWon, BookingID: id} }
func lost() Outcome            { return Outcome{Result: ResultLost} }
func failed(err error) Outcome { return Outcome{Result: ResultFailed, Err: err} }

// Strategy is one claim-allocation algorithm. Attempt performs the
// whole unit of work for a single claim, including any transaction the
// variant needs, and always returns a definitive outcome with no
// transaction left open.
type Strategy interface {
	Name() string
	Attempt(ctx context.Context, claim model.SeatClaim) Outcome
}

// Kind selects a strategy variant at the controller boundary.
type Kind string

const (
	KindNoLock        Kind = "nolock"
	KindLockForUpdate Kind = "lockforupdate"
	KindLockForInsert Kind = "lockforinsert"
	KindSharedLock    Kind = "sharedlock"
	KindRedisLock     Kind = "redislock"
)

// New builds the strategy for kind with its dependencies. locks is
// only consulted for KindRedisLock and may be nil otherwise.
func New(kind Kind, st store.Store, d *delay.Injector, locks *redislock.Manager) (Strategy, error) {
	switch kind {
	case KindNoLock:
		return &NoLock{Store: st, Delay: d}, nil
	case KindLockForUpdate:
		return &LockForUpdate{Store: st, Delay: d}, nil
	case KindLockForInsert:
		return &LockForInsert{Store: st, Delay: d}, nil
	case KindSharedLock:
		return &SharedLock{Store: st, Delay: d}, nil
	case KindRedisLock:
		if locks == nil {
			return nil, fmt.Errorf("strategy %q requires a redis lock manager", kind)
		}
		return &RedisLock{Store: st, Delay: d, Locks: locks}, nil
	}
	return nil, fmt.Errorf("unknown strategy kind %q", kind)
}
