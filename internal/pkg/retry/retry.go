// Package retry re-runs operations that fail for transient reasons, backing
// off exponentially between attempts.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
)

// ErrExhausted wraps the last failure once every attempt has been used
var ErrExhausted = errors.New("retries exhausted")

// Policy bounds how often and how far apart attempts are made
type Policy struct {
	Attempts   int // total tries, the first one included
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	Multiplier float64
	Jitter     float64 // up to this fraction of the delay is added at random

	// Retryable decides whether a failure is worth another attempt.
	// nil retries everything not marked Permanent.
	Retryable func(error) bool
}

// DefaultPolicy makes four attempts, 100ms apart and doubling, capped at 5s
func DefaultPolicy() Policy {
	return Policy{
		Attempts:   4,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		Multiplier: 2,
		Jitter:     0.1,
	}
}

// Backoff returns the pause after the n-th failed attempt, n starting at 1
func (p Policy) Backoff(n int) time.Duration {
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}
	delay := float64(p.BaseDelay) * math.Pow(multiplier, float64(n-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	if p.Jitter > 0 {
		delay += delay * p.Jitter * rand.Float64()
	}
	return time.Duration(delay)
}

type permanentError struct{ err error }

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent marks err so that no policy retries it
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// Retrier runs operations under a Policy
type Retrier struct {
	policy Policy
	logger *logger.ZapLogger
}

// New creates a retrier
func New(p Policy, l *logger.ZapLogger) *Retrier {
	return &Retrier{policy: p, logger: l}
}

// Do calls fn until it succeeds, fails permanently, runs out of attempts or
// ctx ends. op names the operation in logs and errors.
func (r *Retrier) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	attempts := r.policy.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for n := 1; ; n++ {
		if err = fn(ctx); err == nil {
			if n > 1 {
				r.logger.Info("Operation recovered", logger.String("op", op), logger.Int("attempts", n))
			}
			return nil
		}
		if !r.retryable(err) {
			return err
		}
		if n == attempts {
			break
		}

		delay := r.policy.Backoff(n)
		r.logger.Warn("Operation failed, retrying",
			logger.String("op", op),
			logger.Int("attempt", n),
			logger.Duration("delay", delay),
			logger.Err(err))
		if werr := sleep(ctx, delay); werr != nil {
			return fmt.Errorf("%s: %w: %w", op, werr, err)
		}
	}

	r.logger.Error("Operation failed on every attempt",
		logger.String("op", op),
		logger.Int("attempts", attempts),
		logger.Err(err))
	return fmt.Errorf("%s: %w after %d attempts: %w", op, ErrExhausted, attempts, err)
}

func (r *Retrier) retryable(err error) bool {
	var p *permanentError
	if errors.As(err, &p) {
		return false
	}
	return r.policy.Retryable == nil || r.policy.Retryable(err)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
