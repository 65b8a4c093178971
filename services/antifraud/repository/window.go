package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HasPriorChargeback reports the user's risk flag; unknown users are not flagged
func (r *AntifraudRepo) HasPriorChargeback(ctx context.Context, userID int64) (bool, error) {
	var flagged bool
	err := r.db.QueryRowxContext(ctx,
		`SELECT has_prior_cbk FROM users WHERE user_id = $1`, userID,
	).Scan(&flagged)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read user %d: %w", userID, err)
	}
	return flagged, nil
}

// CountSince counts the user's transactions strictly after since
func (r *AntifraudRepo) CountSince(ctx context.Context, userID int64, since time.Time) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND transaction_date > $2`,
		userID, since.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions for user %d: %w", userID, err)
	}
	return count, nil
}

// SumSince sums the user's amounts strictly after since, zero when nothing matches
func (r *AntifraudRepo) SumSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.GetContext(ctx, &sum,
		`SELECT COALESCE(SUM(transaction_amount), 0) FROM transactions WHERE user_id = $1 AND transaction_date > $2`,
		userID, since.UTC())
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum transactions for user %d: %w", userID, err)
	}
	return sum, nil
}
