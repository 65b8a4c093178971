package usecase

import (
	"context"
	"fmt"

	appctx "github.com/efkobus/antifraud-system/internal/pkg/context"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

// ApplyChargeback flags a stored transaction and, for a true flag, its owner.
// It takes the owner's lock so it never interleaves with an evaluation for
// the same user.
func (u *AntifraudUC) ApplyChargeback(ctx context.Context, transactionID int64, hasChargeback bool) (*models.ChargebackResult, error) {
	log := u.logger.With(
		logger.Int64("transaction_id", transactionID),
		logger.Bool("has_cbk", hasChargeback),
		logger.String("request_id", appctx.GetRequestID(ctx)),
		logger.String("source", appctx.GetSource(ctx)))

	if transactionID <= 0 {
		return nil, fmt.Errorf("%w: transaction id must be positive", antifraud.ErrInvalidTransaction)
	}

	var (
		owner int64
		found bool
	)
	err := u.store(ctx, func(ctx context.Context) (err error) {
		owner, found, err = u.repo.TransactionOwner(ctx, transactionID)
		return err
	})
	if err != nil {
		u.metrics.ObserveChargeback("error")
		log.Error("Failed to look up chargeback transaction", logger.Err(err))
		return nil, err
	}
	if !found {
		u.metrics.ObserveChargeback("unknown")
		log.Info("Chargeback for unknown transaction ignored")
		return &models.ChargebackResult{TransactionID: transactionID}, nil
	}

	// the owner of a transaction never changes, so locking after the lookup is safe
	lease, err := u.lockUser(ctx, owner)
	if err != nil {
		u.metrics.ObserveChargeback("error")
		log.Error("Failed to lock user for chargeback", logger.Int64("user_id", owner), logger.Err(err))
		return nil, err
	}
	defer lease.Release()

	if err := u.holdLock(ctx, lease, owner); err != nil {
		u.metrics.ObserveChargeback("error")
		log.Error("Lost user lock before chargeback", logger.Int64("user_id", owner), logger.Err(err))
		return nil, err
	}

	var result *models.ChargebackResult
	err = u.store(ctx, func(ctx context.Context) (err error) {
		result, err = u.repo.ApplyChargeback(ctx, transactionID, hasChargeback)
		return err
	})
	if err != nil {
		u.metrics.ObserveChargeback("error")
		log.Error("Failed to apply chargeback", logger.Int64("user_id", owner), logger.Err(err))
		return nil, err
	}

	outcome := "cleared"
	if result.UserFlagged {
		outcome = "flagged"
	}
	u.metrics.ObserveChargeback(outcome)
	log.Info("Chargeback applied",
		logger.Int64("user_id", result.UserID),
		logger.Bool("found", result.Found),
		logger.Bool("user_flagged", result.UserFlagged))
	return result, nil
}
