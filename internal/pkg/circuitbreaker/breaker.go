package circuitbreaker

import (
	"context"
	"errors"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sony/gobreaker"
)

// ErrCircuitBreakerOpen is returned while the breaker rejects calls
var ErrCircuitBreakerOpen = errors.New("circuit breaker is open")

// Config holds circuit breaker configuration
type Config struct {
	Name         string
	Enabled      bool
	MaxRequests  uint32        // Max requests allowed in half-open state
	Interval     time.Duration // Interval to clear counters in closed state
	Timeout      time.Duration // Timeout to switch from open to half-open
	FailureRatio float64       // Failure ratio that trips the breaker
	MinRequests  uint32        // Requests needed before the ratio is considered
	IsFailure    func(err error) bool
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig(name string) Config {
	return Config{
		Name:         name,
		Enabled:      true,
		MaxRequests:  1,
		Interval:     30 * time.Second,
		Timeout:      15 * time.Second,
		FailureRatio: 0.5,
		MinRequests:  10,
	}
}

// CircuitBreaker wraps gobreaker with logging and a state gauge
type CircuitBreaker struct {
	cb *gobreaker.CircuitBreaker
}

// New creates a circuit breaker. A disabled config yields a pass-through breaker.
func New(config Config, l *logger.ZapLogger, m *metrics.Metrics) *CircuitBreaker {
	if !config.Enabled {
		return &CircuitBreaker{}
	}

	failureRatio := config.FailureRatio
	if failureRatio <= 0 {
		failureRatio = 0.5
	}
	minRequests := config.MinRequests
	if minRequests == 0 {
		minRequests = 5
	}

	var state *prometheus.GaugeVec
	if m != nil {
		state = m.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0: closed, 1: half-open, 2: open)",
		}, []string{"name"})
		state.WithLabelValues(config.Name).Set(float64(gobreaker.StateClosed))
	}

	settings := gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= minRequests && ratio >= failureRatio
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			l.Warn("Circuit breaker state changed",
				logger.String("name", name),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
			if state != nil {
				state.WithLabelValues(name).Set(float64(to))
			}
		},
	}
	if config.IsFailure != nil {
		isFailure := config.IsFailure
		settings.IsSuccessful = func(err error) bool { return !isFailure(err) }
	}

	return &CircuitBreaker{cb: gobreaker.NewCircuitBreaker(settings)}
}

// Execute runs fn under breaker protection
func (b *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if b == nil || b.cb == nil {
		return fn(ctx)
	}
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrCircuitBreakerOpen
	}
	return err
}

// State reports the current state, "closed" for a disabled breaker
func (b *CircuitBreaker) State() string {
	if b == nil || b.cb == nil {
		return gobreaker.StateClosed.String()
	}
	return b.cb.State().String()
}
