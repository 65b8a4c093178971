package usecase

import (
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/cardhash"
	"github.com/efkobus/antifraud-system/internal/pkg/circuitbreaker"
	"github.com/efkobus/antifraud-system/internal/pkg/keylock"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/metrics"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

// AntifraudUC implements the antifraud use case interface
type AntifraudUC struct {
	cfg     models.AntifraudConfig
	repo    antifraud.AntifraudRepo
	gw      antifraud.DecisionGW
	events  *decisionEvents
	locker  keylock.Locker
	hasher  *cardhash.Hasher
	breaker *circuitbreaker.CircuitBreaker
	metrics *metrics.Metrics
	logger  *logger.ZapLogger
	nowFunc func() time.Time
}

// Option customizes optional collaborators
type Option func(*AntifraudUC)

// WithBreaker guards every store call with cb
func WithBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(u *AntifraudUC) { u.breaker = cb }
}

// WithMetrics records verdicts and chargebacks on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(u *AntifraudUC) { u.metrics = m }
}

// WithGateway publishes every decision through gw, in the background
func WithGateway(gw antifraud.DecisionGW) Option {
	return func(u *AntifraudUC) { u.gw = gw }
}

// NewAntifraudUC creates a new antifraud use case
func NewAntifraudUC(
	cfg models.AntifraudConfig,
	repo antifraud.AntifraudRepo,
	locker keylock.Locker,
	hasher *cardhash.Hasher,
	l *logger.ZapLogger,
	opts ...Option,
) *AntifraudUC {
	u := &AntifraudUC{
		cfg:     cfg,
		repo:    repo,
		locker:  locker,
		hasher:  hasher,
		logger:  l.Named("antifraud"),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(u)
	}
	if u.gw != nil {
		u.events = newDecisionEvents(u.gw, u.logger, eventQueueSize)
	}
	return u
}

// Close flushes pending decision events. Evaluations after Close are not published.
func (u *AntifraudUC) Close() {
	u.events.close()
}
