package nsq

import (
	"context"
	"errors"
	"fmt"
	"time"

	appctx "github.com/efkobus/antifraud-system/internal/pkg/context"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	nsqpkg "github.com/efkobus/antifraud-system/internal/pkg/nsq"
	"github.com/efkobus/antifraud-system/internal/pkg/retry"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

const handleTimeout = 30 * time.Second

// ChargebackHandler consumes the chargeback feed
type ChargebackHandler struct {
	antifraudUC antifraud.AntifraudUC
	retrier     *retry.Retrier
	logger      *logger.ZapLogger
	consumer    *nsqpkg.Consumer
}

// NewChargebackHandler creates a new chargeback feed handler. Only failures a
// later attempt can fix are retried under policy.
func NewChargebackHandler(antifraudUC antifraud.AntifraudUC, policy retry.Policy, l *logger.ZapLogger) *ChargebackHandler {
	log := l.Named("chargeback-feed")
	policy.Retryable = transientChargebackError
	return &ChargebackHandler{
		antifraudUC: antifraudUC,
		retrier:     retry.New(policy, log),
		logger:      log,
	}
}

// RetryPolicy builds the feed's backoff from its NSQ settings
func RetryPolicy(cfg models.NSQConfig) retry.Policy {
	policy := retry.DefaultPolicy()
	if cfg.RetryAttempts > 0 {
		policy.Attempts = cfg.RetryAttempts
	}
	if cfg.RetryBaseDelay > 0 {
		policy.BaseDelay = cfg.RetryBaseDelay
	}
	if cfg.RetryMaxDelay > 0 {
		policy.MaxDelay = cfg.RetryMaxDelay
	}
	return policy
}

// transientChargebackError reports store-side failures that may clear up.
// Anything else, an invalid id for one, fails the same way every time.
func transientChargebackError(err error) bool {
	return errors.Is(err, antifraud.ErrStoreUnavailable) ||
		errors.Is(err, antifraud.ErrTimeout) ||
		errors.Is(err, antifraud.ErrLockUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// InitNSQConsumer subscribes to the chargeback topic
func (h *ChargebackHandler) InitNSQConsumer(cfg nsqpkg.ConsumerConfig) error {
	consumer, err := nsqpkg.NewConsumer(cfg, h.HandleChargeback, h.logger)
	if err != nil {
		return fmt.Errorf("failed to subscribe to chargeback feed: %w", err)
	}
	h.consumer = consumer
	return nil
}

// HandleChargeback applies one feed message. Malformed payloads and errors
// that cannot succeed are dropped; transient failures are retried here and
// then handed back to NSQ for requeue.
func (h *ChargebackHandler) HandleChargeback(body []byte) error {
	var req models.ChargebackRequest
	if err := nsqpkg.UnmarshalMessage(body, &req); err != nil {
		h.logger.Error("Dropping malformed chargeback message", logger.Err(err))
		return nil
	}
	if req.TransactionID <= 0 {
		h.logger.Error("Dropping chargeback without transaction id",
			logger.Int64("transaction_id", req.TransactionID))
		return nil
	}

	ctx := appctx.WithSource(appctx.WithRequestID(context.Background(), ""), "nsq")
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()

	err := h.retrier.Do(ctx, "apply chargeback", func(ctx context.Context) error {
		_, err := h.antifraudUC.ApplyChargeback(ctx, req.TransactionID, req.HasChargeback)
		return err
	})
	if err != nil && !transientChargebackError(err) {
		h.logger.Error("Dropping chargeback that cannot be applied",
			logger.Int64("transaction_id", req.TransactionID),
			logger.Err(err))
		return nil
	}
	return err
}

// Stop stops the consumer, waiting for in-flight messages
func (h *ChargebackHandler) Stop() {
	if h.consumer != nil {
		h.consumer.Stop()
	}
}
