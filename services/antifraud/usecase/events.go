package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

const (
	eventQueueSize = 1024
	publishTimeout = 2 * time.Second
)

// decisionEvents publishes decisions off the request path. A full queue
// drops the event rather than slowing the verdict down.
type decisionEvents struct {
	gw     antifraud.DecisionGW
	logger *logger.ZapLogger
	queue  chan models.Decision
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func newDecisionEvents(gw antifraud.DecisionGW, l *logger.ZapLogger, size int) *decisionEvents {
	e := &decisionEvents{
		gw:     gw,
		logger: l,
		queue:  make(chan models.Decision, size),
		done:   make(chan struct{}),
	}
	go e.run()
	return e
}

func (e *decisionEvents) enqueue(decision models.Decision) {
	if e == nil {
		return
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}

	select {
	case e.queue <- decision:
	default:
		e.logger.Warn("Decision event queue full, event dropped",
			logger.Int64("transaction_id", decision.TransactionID))
	}
}

func (e *decisionEvents) run() {
	defer close(e.done)
	for decision := range e.queue {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		if err := e.gw.PublishDecision(ctx, decision); err != nil {
			e.logger.Warn("Failed to publish decision",
				logger.Int64("transaction_id", decision.TransactionID),
				logger.Err(err))
		}
		cancel()
	}
}

// close stops accepting events and waits for the queued ones to go out
func (e *decisionEvents) close() {
	if e == nil {
		return
	}
	e.mu.Lock()
	if !e.closed {
		e.closed = true
		close(e.queue)
	}
	e.mu.Unlock()
	<-e.done
}
