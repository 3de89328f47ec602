// Sentinel errors shared by the store implementations. Handlers and
// strategies distinguish failure classes with errors.Is; the repository
// layer wraps driver errors into these sentinels while preserving the
// original message.
package store

import "errors"

// ErrDuplicateEntry signals a unique-key violation on insert. The
// shared-lock strategy treats this as losing the race rather than as a
// hard failure.
var ErrDuplicateEntry = errors.New("duplicate entry")

// ErrLockWaitTimeout signals that the storage engine gave up waiting
// for a row lock held by another transaction.
var ErrLockWaitTimeout = errors.New("lock wait timeout")

// ErrDeadlock signals that the storage engine chose this transaction as
// a deadlock victim and rolled it back. The lock-for-insert strategy is
// expected to produce these under contention.
var ErrDeadlock = errors.New("deadlock")
