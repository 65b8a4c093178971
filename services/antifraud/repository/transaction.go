package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/jmoiron/sqlx"
)

const (
	insertTransactionQuery = `
		INSERT INTO transactions (
			transaction_id, merchant_id, user_id, card_hash,
			transaction_date, transaction_amount, device_id, has_cbk
		) VALUES (
			:transaction_id, :merchant_id, :user_id, :card_hash,
			:transaction_date, :transaction_amount, :device_id, :has_cbk
		)
		ON CONFLICT (transaction_id) DO NOTHING`

	insertUserQuery = `
		INSERT INTO users (user_id, has_prior_cbk)
		VALUES (:user_id, :has_prior_cbk)
		ON CONFLICT (user_id) DO NOTHING`

	bulkBatchSize = 500
)

// InsertApproved stores an approved transaction together with its lazy user row
func (r *AntifraudRepo) InsertApproved(ctx context.Context, t *models.Transaction) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, insertTransactionQuery, t)
	if err != nil {
		return fmt.Errorf("failed to insert transaction %d: %w", t.TransactionID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", antifraud.ErrDuplicateTransaction, t.TransactionID)
	}

	if _, err := tx.NamedExecContext(ctx, insertUserQuery, models.User{UserID: t.UserID}); err != nil {
		return fmt.Errorf("failed to upsert user %d: %w", t.UserID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction %d: %w", t.TransactionID, err)
	}
	return nil
}

// BulkInsert loads historical rows in batches. Existing ids are left untouched.
func (r *AntifraudRepo) BulkInsert(ctx context.Context, txs []*models.Transaction) (int, error) {
	inserted := 0
	for start := 0; start < len(txs); start += bulkBatchSize {
		end := start + bulkBatchSize
		if end > len(txs) {
			end = len(txs)
		}
		n, err := r.insertBatch(ctx, txs[start:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}
	return inserted, nil
}

func (r *AntifraudRepo) insertBatch(ctx context.Context, batch []*models.Transaction) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.NamedExecContext(ctx, insertTransactionQuery, batch)
	if err != nil {
		return 0, fmt.Errorf("failed to insert batch: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}

	if _, err := tx.NamedExecContext(ctx, insertUserQuery, distinctUsers(batch)); err != nil {
		return 0, fmt.Errorf("failed to upsert users: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit batch: %w", err)
	}
	return int(affected), nil
}

func distinctUsers(batch []*models.Transaction) []models.User {
	seen := make(map[int64]struct{}, len(batch))
	users := make([]models.User, 0, len(batch))
	for _, t := range batch {
		if _, ok := seen[t.UserID]; ok {
			continue
		}
		seen[t.UserID] = struct{}{}
		users = append(users, models.User{UserID: t.UserID})
	}
	return users
}

// TransactionOwner looks up which user a transaction belongs to
func (r *AntifraudRepo) TransactionOwner(ctx context.Context, transactionID int64) (int64, bool, error) {
	var userID int64
	err := r.db.GetContext(ctx, &userID,
		`SELECT user_id FROM transactions WHERE transaction_id = $1`, transactionID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read transaction %d: %w", transactionID, err)
	}
	return userID, true, nil
}

// ApplyChargeback flips has_cbk and flags the owner in one database transaction.
// Both flags only ever go from false to true.
func (r *AntifraudRepo) ApplyChargeback(ctx context.Context, transactionID int64, hasChargeback bool) (*models.ChargebackResult, error) {
	result := &models.ChargebackResult{TransactionID: transactionID}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var userID int64
	err = tx.QueryRowxContext(ctx,
		`UPDATE transactions SET has_cbk = has_cbk OR $2 WHERE transaction_id = $1 RETURNING user_id`,
		transactionID, hasChargeback,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to flag transaction %d: %w", transactionID, err)
	}
	result.Found = true
	result.UserID = userID

	if hasChargeback {
		if err := flagUser(ctx, tx, userID); err != nil {
			return nil, err
		}
		result.UserFlagged = true
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit chargeback %d: %w", transactionID, err)
	}
	return result, nil
}

func flagUser(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO users (user_id, has_prior_cbk) VALUES ($1, TRUE)
		ON CONFLICT (user_id) DO UPDATE SET has_prior_cbk = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("failed to flag user %d: %w", userID, err)
	}
	return nil
}

// Reset truncates both tables
func (r *AntifraudRepo) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `TRUNCATE TABLE transactions, users`); err != nil {
		return fmt.Errorf("failed to reset store: %w", err)
	}
	return nil
}
