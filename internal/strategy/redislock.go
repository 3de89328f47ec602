package strategy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pkamnerd/movie-booking-locks/internal/delay"
	"github.com/pkamnerd/movie-booking-locks/internal/model"
	"github.com/pkamnerd/movie-booking-locks/internal/redislock"
	"github.com/pkamnerd/movie-booking-locks/internal/store"
)

// RedisLock books under an external per-seat mutex held in Redis
// instead of a database row lock. The lock key covers the full
// (movie, screen, seat) triple, so attempts on the same seat serialize
// outside the database entirely; an attempt that finds the lock taken
// loses immediately rather than queueing. The lock TTL covers the
// injected pause plus a margin so a healthy holder never loses the
// lock mid-attempt.
type RedisLock struct {
	Store store.Store
	Delay *delay.Injector
	Locks *redislock.Manager
}

func (s *RedisLock) Name() string { return string(KindRedisLock) }

func (s *RedisLock) Attempt(ctx context.Context, claim model.SeatClaim) Outcome {
	key := fmt.Sprintf("seat:%d:%d:%d", claim.MovieID, claim.ScreenID, claim.SeatID)
	ttl := s.Delay.Duration() + 10*time.Second
	lock, err := s.Locks.Acquire(ctx, key, ttl)
	if err != nil {
		if errors.Is(err, redislock.ErrNotAcquired) {
			return lost()
		}
		return failed(err)
	}
	defer func() { _ = lock.Release(context.WithoutCancel(ctx)) }()

	existing, err := s.Store.FindBooking(ctx, claim, store.LockNone)
	if err != nil {
		return failed(err)
	}
	if existing != nil {
		return lost()
	}
	s.Delay.Wait()
	id, err := s.Store.InsertBooking(ctx, claim)
	if err != nil {
		return failed(err)
	}
	return won(id)
}
