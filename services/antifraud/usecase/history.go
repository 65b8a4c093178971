package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/internal/pkg/timeutil"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

// Ingest stores known-past transactions without running the rules, then
// applies their chargebacks through the regular processor. Rows that cannot
// be parsed are skipped; ids already stored are left as they are.
func (u *AntifraudUC) Ingest(ctx context.Context, records []models.HistoricalRecord) (*models.IngestSummary, error) {
	summary := &models.IngestSummary{Rows: len(records)}

	txs := make([]*models.Transaction, 0, len(records))
	chargebacks := make([]int64, 0)
	for i := range records {
		rec := &records[i]
		txn, err := u.buildTransaction(&rec.Request)
		if err != nil {
			summary.Skipped++
			u.logger.Warn("Skipping historical row",
				logger.Int("line", rec.Line),
				logger.Int64("transaction_id", rec.Request.TransactionID),
				logger.Err(err))
			continue
		}
		txs = append(txs, txn)
		if rec.HasChargeback {
			chargebacks = append(chargebacks, txn.TransactionID)
		}
	}

	inserted, err := u.repo.BulkInsert(ctx, txs)
	summary.Inserted = inserted
	if err != nil {
		return summary, fmt.Errorf("%w: %w", antifraud.ErrStoreUnavailable, err)
	}
	summary.Duplicates = len(txs) - inserted

	for _, id := range chargebacks {
		res, err := u.ApplyChargeback(ctx, id, true)
		if err != nil {
			return summary, err
		}
		if res.Found {
			summary.Chargebacks++
		}
	}

	u.logger.Info("Historical load finished",
		logger.Int("rows", summary.Rows),
		logger.Int("inserted", summary.Inserted),
		logger.Int("duplicates", summary.Duplicates),
		logger.Int("skipped", summary.Skipped),
		logger.Int("chargebacks", summary.Chargebacks))
	return summary, nil
}

// Replay empties the store, evaluates records in time order and scores each
// verdict against the record's chargeback label. Chargebacks are applied once
// every record has been evaluated, so labels never leak into the verdicts.
func (u *AntifraudUC) Replay(ctx context.Context, records []models.HistoricalRecord) (*models.ReplayReport, error) {
	if err := u.repo.Reset(ctx); err != nil {
		return nil, fmt.Errorf("%w: %w", antifraud.ErrStoreUnavailable, err)
	}

	type timed struct {
		rec *models.HistoricalRecord
		at  time.Time
	}
	report := &models.ReplayReport{}
	ordered := make([]timed, 0, len(records))
	for i := range records {
		at, err := timeutil.Parse(records[i].Request.Timestamp)
		if err != nil {
			report.Skipped++
			continue
		}
		ordered = append(ordered, timed{rec: &records[i], at: at})
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].at.Before(ordered[j].at) })

	for _, item := range ordered {
		decision, err := u.Evaluate(ctx, &item.rec.Request)
		switch {
		case err == nil:
		case errors.Is(err, antifraud.ErrDuplicateTransaction), errors.Is(err, antifraud.ErrInvalidTransaction):
			report.Skipped++
			continue
		default:
			return report, err
		}

		report.Processed++
		fraud := item.rec.HasChargeback
		switch {
		case !decision.Approved() && fraud:
			report.CorrectDeny++
			report.CaughtAmount = report.CaughtAmount.Add(item.rec.Request.Amount)
		case decision.Approved() && !fraud:
			report.CorrectApprove++
		case !decision.Approved() && !fraud:
			report.FalsePositive++
		default:
			report.FalseNegative++
			report.MissedAmount = report.MissedAmount.Add(item.rec.Request.Amount)
		}
	}

	for _, item := range ordered {
		if !item.rec.HasChargeback {
			continue
		}
		if _, err := u.ApplyChargeback(ctx, item.rec.Request.TransactionID, true); err != nil {
			return report, err
		}
	}

	return report, nil
}
