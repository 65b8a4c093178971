package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/constants"
	"github.com/efkobus/antifraud-system/internal/pkg/keylock"
	appctx "github.com/efkobus/antifraud-system/internal/pkg/context"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/internal/pkg/timeutil"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/shopspring/decimal"
)

// Evaluate runs the rules for one transaction and, when all pass, stores it.
// Every path yields a decision; on any fault the verdict is deny.
func (u *AntifraudUC) Evaluate(ctx context.Context, req *models.TransactionRequest) (decision models.Decision, err error) {
	start := u.nowFunc()
	decision = models.Decision{
		TransactionID: req.TransactionID,
		UserID:        req.UserID,
		Verdict:       models.VerdictDeny,
		EvaluatedAt:   start.UTC(),
	}

	var fields []logger.Field
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during evaluation: %v", r)
			decision.Verdict = models.VerdictDeny
			decision.Reason = models.ReasonInternal
		}
		u.record(ctx, decision, err, time.Since(start), fields)
	}()

	decision.Reason, fields, err = u.evaluate(ctx, req)
	if err == nil && decision.Reason == models.ReasonNone {
		decision.Verdict = models.VerdictApprove
	}
	return decision, err
}

func (u *AntifraudUC) evaluate(ctx context.Context, req *models.TransactionRequest) (models.DenyReason, []logger.Field, error) {
	txn, err := u.buildTransaction(req)
	if err != nil {
		return reasonFor(err), nil, err
	}

	lease, err := u.lockUser(ctx, txn.UserID)
	if err != nil {
		return reasonFor(err), nil, err
	}
	defer lease.Release()

	return u.decide(ctx, txn, lease)
}

// decide must run under the user's lock: the reads and the write form one
// check-then-act sequence. The lease is confirmed again right before the
// write, so a holder whose lock expired never commits on stale reads.
func (u *AntifraudUC) decide(ctx context.Context, txn *models.Transaction, lease keylock.Lease) (models.DenyReason, []logger.Field, error) {
	var flagged bool
	err := u.store(ctx, func(ctx context.Context) (err error) {
		flagged, err = u.repo.HasPriorChargeback(ctx, txn.UserID)
		return err
	})
	if err != nil {
		return reasonFor(err), nil, err
	}
	if flagged {
		return models.ReasonPriorChargeback, nil, nil
	}

	var count int
	err = u.store(ctx, func(ctx context.Context) (err error) {
		count, err = u.repo.CountSince(ctx, txn.UserID, txn.Timestamp.Add(-u.cfg.VelocityWindow))
		return err
	})
	if err != nil {
		return reasonFor(err), nil, err
	}
	if count >= u.cfg.MaxTransactionsPerWindow {
		return models.ReasonVelocity, []logger.Field{
			logger.Int("window_count", count),
			logger.Duration("window", u.cfg.VelocityWindow),
		}, nil
	}

	var sum decimal.Decimal
	err = u.store(ctx, func(ctx context.Context) (err error) {
		sum, err = u.repo.SumSince(ctx, txn.UserID, txn.Timestamp.Add(-u.cfg.AmountWindow))
		return err
	})
	if err != nil {
		return reasonFor(err), nil, err
	}
	if total := sum.Add(txn.Amount); total.GreaterThan(u.cfg.MaxAmountPerWindow) {
		return models.ReasonAmount, []logger.Field{
			logger.String("window_sum", sum.StringFixed(2)),
			logger.String("window_total", total.StringFixed(2)),
			logger.String("ceiling", u.cfg.MaxAmountPerWindow.StringFixed(2)),
		}, nil
	}

	if err := u.holdLock(ctx, lease, txn.UserID); err != nil {
		return reasonFor(err), nil, err
	}
	err = u.store(ctx, func(ctx context.Context) error {
		return u.repo.InsertApproved(ctx, txn)
	})
	if err != nil {
		return reasonFor(err), nil, err
	}
	return models.ReasonNone, []logger.Field{logger.Int("window_count", count)}, nil
}

// buildTransaction turns the inbound descriptor into a storable row. The
// raw card number goes no further than this function.
func (u *AntifraudUC) buildTransaction(req *models.TransactionRequest) (*models.Transaction, error) {
	ts, err := timeutil.Parse(req.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", antifraud.ErrUnparsableTimestamp, err)
	}

	amount := req.Amount.Round(2)
	switch {
	case req.TransactionID <= 0 || req.MerchantID <= 0 || req.UserID <= 0:
		return nil, fmt.Errorf("%w: ids must be positive", antifraud.ErrInvalidTransaction)
	case !amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", antifraud.ErrInvalidTransaction)
	case u.cfg.MaxTransactionAmount.IsPositive() && amount.GreaterThan(u.cfg.MaxTransactionAmount):
		return nil, fmt.Errorf("%w: amount exceeds %s", antifraud.ErrInvalidTransaction, u.cfg.MaxTransactionAmount)
	case req.CardNumber == "":
		return nil, fmt.Errorf("%w: card number is required", antifraud.ErrInvalidTransaction)
	}

	return &models.Transaction{
		TransactionID: req.TransactionID,
		MerchantID:    req.MerchantID,
		UserID:        req.UserID,
		CardHash:      u.hasher.Hash(req.CardNumber),
		Timestamp:     ts,
		Amount:        amount,
		DeviceID:      req.DeviceID,
	}, nil
}

func (u *AntifraudUC) lockUser(ctx context.Context, userID int64) (keylock.Lease, error) {
	if u.cfg.LockWait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.LockWait)
		defer cancel()
	}

	lease, err := u.locker.Lock(ctx, fmt.Sprintf(constants.KeyUserLock, userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", antifraud.ErrLockUnavailable, err)
	}
	return lease, nil
}

// holdLock confirms the user's lease before a write, bounded like a store call
func (u *AntifraudUC) holdLock(ctx context.Context, lease keylock.Lease, userID int64) error {
	if u.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.StoreTimeout)
		defer cancel()
	}
	if err := lease.Hold(ctx); err != nil {
		return fmt.Errorf("%w: user %d: %w", antifraud.ErrLockUnavailable, userID, err)
	}
	return nil
}

// store runs one store call with the configured timeout behind the breaker
func (u *AntifraudUC) store(ctx context.Context, fn func(context.Context) error) error {
	if u.cfg.StoreTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.cfg.StoreTimeout)
		defer cancel()
	}

	err := u.breaker.Execute(ctx, fn)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, antifraud.ErrDuplicateTransaction):
		return err
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", antifraud.ErrTimeout, err)
	default:
		return fmt.Errorf("%w: %w", antifraud.ErrStoreUnavailable, err)
	}
}

// IsStoreFailure tells the breaker which errors count against the store.
// A duplicate id is the caller's fault, not the store's.
func IsStoreFailure(err error) bool {
	return err != nil && !errors.Is(err, antifraud.ErrDuplicateTransaction)
}

func reasonFor(err error) models.DenyReason {
	switch {
	case errors.Is(err, antifraud.ErrUnparsableTimestamp):
		return models.ReasonInvalidTimestamp
	case errors.Is(err, antifraud.ErrInvalidTransaction):
		return models.ReasonInvalid
	case errors.Is(err, antifraud.ErrDuplicateTransaction):
		return models.ReasonDuplicate
	case errors.Is(err, antifraud.ErrLockUnavailable):
		return models.ReasonLockUnavailable
	case errors.Is(err, antifraud.ErrTimeout):
		return models.ReasonTimeout
	case errors.Is(err, antifraud.ErrStoreUnavailable):
		return models.ReasonStoreUnavailable
	default:
		return models.ReasonInternal
	}
}

func (u *AntifraudUC) record(ctx context.Context, decision models.Decision, err error, elapsed time.Duration, fields []logger.Field) {
	u.metrics.ObserveDecision(string(decision.Verdict), string(decision.Reason), elapsed)

	if id := appctx.GetRequestID(ctx); id != "" {
		fields = append(fields, logger.String("request_id", id))
	}
	if source := appctx.GetSource(ctx); source != "" {
		fields = append(fields, logger.String("source", source))
	}
	fields = append(fields,
		logger.Int64("transaction_id", decision.TransactionID),
		logger.Int64("user_id", decision.UserID),
		logger.String("recommendation", string(decision.Verdict)),
		logger.Duration("elapsed", elapsed),
	)
	switch {
	case err != nil:
		u.logger.Error("Transaction denied on failure",
			append(fields, logger.String("reason", string(decision.Reason)), logger.Err(err))...)
	case decision.Approved():
		u.logger.Info("Transaction approved", fields...)
	default:
		u.logger.Warn("Transaction denied by rule",
			append(fields, logger.String("rule", string(decision.Reason)))...)
	}

	u.events.enqueue(decision)
}
