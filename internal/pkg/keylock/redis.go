package keylock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const unlockScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end`

const refreshScript = `
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("pexpire", KEYS[1], ARGV[2])
else
	return 0
end`

// RedisLocker is a SETNX lock shared by every instance pointing at the same
// Redis. The TTL bounds how long a crashed holder can block a key; a live
// holder keeps extending it until release.
type RedisLocker struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
	logger *logger.ZapLogger
}

// NewRedis creates a distributed locker. wait bounds the acquire loop even
// when ctx carries no deadline.
func NewRedis(client *redis.Client, ttl, wait time.Duration, l *logger.ZapLogger) *RedisLocker {
	return &RedisLocker{client: client, ttl: ttl, wait: wait, logger: l}
}

func (r *RedisLocker) Lock(ctx context.Context, key string) (Lease, error) {
	token := uuid.NewString()

	timer := time.NewTimer(r.wait)
	defer timer.Stop()

	retryInterval := 10 * time.Millisecond
	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrLockUnavailable, key, err)
		}
		if ok {
			break
		}

		select {
		case <-timer.C:
			return nil, fmt.Errorf("%w: %s: wait exceeded %s", ErrLockUnavailable, key, r.wait)
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockUnavailable, key, ctx.Err())
		case <-time.After(retryInterval):
			if retryInterval < 200*time.Millisecond {
				retryInterval *= 2
			}
		}
	}

	lease := &redisLease{
		locker: r,
		key:    key,
		token:  token,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	go lease.watch(r.ttl / 3)
	return lease, nil
}

type redisLease struct {
	locker *RedisLocker
	key    string
	token  string
	stop   chan struct{}
	done   chan struct{}
	once   sync.Once

	mu   sync.Mutex
	lost bool
}

// Hold extends the TTL only while the stored token is still ours. Once the
// key expired or another holder took it, the lease stays lost.
func (l *redisLease) Hold(ctx context.Context) error {
	l.mu.Lock()
	lost := l.lost
	l.mu.Unlock()
	if lost {
		return fmt.Errorf("%w: %s", ErrLockLost, l.key)
	}

	res, err := l.locker.client.Eval(ctx, refreshScript, []string{l.key}, l.token, l.locker.ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLockUnavailable, l.key, err)
	}
	if res == 0 {
		l.mu.Lock()
		l.lost = true
		l.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrLockLost, l.key)
	}
	return nil
}

func (l *redisLease) watch(interval time.Duration) {
	defer close(l.done)
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-l.stop:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			err := l.Hold(ctx)
			cancel()
			if errors.Is(err, ErrLockLost) {
				l.locker.logger.Warn("Lock lost while held", logger.String("key", l.key))
				return
			}
			if err != nil {
				l.locker.logger.Warn("Failed to extend lock", logger.String("key", l.key), logger.Err(err))
			}
		}
	}
}

func (l *redisLease) Release() {
	l.once.Do(func() {
		close(l.stop)
		<-l.done

		// Unlock must run even if the caller's context is already done.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		res, err := l.locker.client.Eval(ctx, unlockScript, []string{l.key}, l.token).Int()
		if err != nil {
			l.locker.logger.Error("Failed to release lock", logger.String("key", l.key), logger.Err(err))
			return
		}
		if res == 0 {
			l.locker.logger.Warn("Lock expired before release", logger.String("key", l.key))
		}
	})
}
