package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/metrics"
	"github.com/stretchr/testify/assert"
)

var errStore = errors.New("store down")

func failing(context.Context) error { return errStore }

func TestCircuitBreaker_TripsAfterFailureRatio(t *testing.T) {
	cfg := DefaultConfig("store")
	cfg.MinRequests = 3
	cfg.Timeout = time.Hour
	cb := New(cfg, logger.NewNopLogger(), metrics.NewMetrics("test"))

	for i := 0; i < 3; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), failing), errStore)
	}

	assert.Equal(t, "open", cb.State())
	called := false
	err := cb.Execute(context.Background(), func(context.Context) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrCircuitBreakerOpen)
	assert.False(t, called)
}

func TestCircuitBreaker_IgnoresNonFailures(t *testing.T) {
	businessErr := errors.New("duplicate")
	cfg := DefaultConfig("store")
	cfg.MinRequests = 2
	cfg.IsFailure = func(err error) bool { return err != nil && !errors.Is(err, businessErr) }
	cb := New(cfg, logger.NewNopLogger(), nil)

	for i := 0; i < 5; i++ {
		_ = cb.Execute(context.Background(), func(context.Context) error { return businessErr })
	}
	assert.Equal(t, "closed", cb.State())
}

func TestCircuitBreaker_Disabled(t *testing.T) {
	cfg := DefaultConfig("store")
	cfg.Enabled = false
	cb := New(cfg, logger.NewNopLogger(), nil)

	for i := 0; i < 20; i++ {
		assert.ErrorIs(t, cb.Execute(context.Background(), failing), errStore)
	}
	assert.Equal(t, "closed", cb.State())
}
