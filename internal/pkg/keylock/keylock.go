// Package keylock serializes work per key. Different keys never contend.
package keylock

import (
	"context"
	"errors"
)

// ErrLockUnavailable is returned when a lock cannot be acquired in time
var ErrLockUnavailable = errors.New("lock unavailable")

// ErrLockLost is returned by Lease.Hold once the lock expired or changed hands
var ErrLockLost = errors.New("lock lost")

// Lease is a held lock
type Lease interface {
	// Hold confirms the lease is still owned and restarts its expiry, if it
	// has one. Writes that rely on the lock must call it first.
	Hold(ctx context.Context) error
	// Release frees the lock. Calling it more than once is safe.
	Release()
}

// Locker acquires an exclusive lock on key
type Locker interface {
	Lock(ctx context.Context, key string) (Lease, error)
}
