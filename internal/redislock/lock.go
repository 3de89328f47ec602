// Package redislock implements a per-key mutex over Redis using
// SET NX with a random token and a TTL. It backs the /create/redis
// booking strategy: the lock serializes attempts on one seat across
// every server instance sharing the Redis.
package redislock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotAcquired is returned when another holder owns the lock.
var ErrNotAcquired = errors.New("lock not acquired")

// ErrNotOwned is returned when releasing a lock whose token no longer
// matches, e.g. after the TTL expired and someone else took it.
var ErrNotOwned = errors.New("lock not owned")

// releaseScript deletes the key only when the stored token matches, so
// a holder whose lock expired cannot release a successor's lock.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
else
    return 0
end
`)

// Manager acquires locks against a single Redis client.
type Manager struct {
	client *redis.Client
}

// NewManager returns a Manager using the given client.
func NewManager(client *redis.Client) *Manager { return &Manager{client: client} }

// Lock is one held lock. Release it when the protected work is done;
// the TTL bounds how long a crashed holder can block others.
type Lock struct {
	client *redis.Client
	key    string
	token  string
}

// Acquire takes the lock for key, failing immediately with
// ErrNotAcquired when it is already held.
func (m *Manager) Acquire(ctx context.Context, key string, ttl time.Duration) (*Lock, error) {
	lockKey := "lock:" + key
	token := uuid.New().String()
	ok, err := m.client.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", lockKey, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}
	return &Lock{client: m.client, key: lockKey, token: token}, nil
}

// Release frees the lock if this holder still owns it.
func (l *Lock) Release(ctx context.Context) error {
	n, err := releaseScript.Run(ctx, l.client, []string{l.key}, l.token).Int()
	if err != nil {
		return fmt.Errorf("release lock %s: %w", l.key, err)
	}
	if n == 0 {
		return ErrNotOwned
	}
	return nil
}
