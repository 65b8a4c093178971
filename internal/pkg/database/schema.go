package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema is applied in order; every statement is idempotent
var schema = []string{
	`CREATE TABLE IF NOT EXISTS transactions (
		transaction_id     BIGINT PRIMARY KEY,
		merchant_id        BIGINT NOT NULL,
		user_id            BIGINT NOT NULL,
		card_hash          TEXT NOT NULL,
		transaction_date   TIMESTAMPTZ NOT NULL,
		transaction_amount NUMERIC(14,2) NOT NULL CHECK (transaction_amount > 0),
		device_id          BIGINT,
		has_cbk            BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		user_id       BIGINT PRIMARY KEY,
		has_prior_cbk BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_user_date ON transactions (user_id, transaction_date)`,
	`CREATE INDEX IF NOT EXISTS idx_transactions_card_hash ON transactions (card_hash)`,
}

// Migrate creates the tables and indexes if they do not exist yet
func Migrate(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for i, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}
