package config

import (
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
)

// storeCallsPerDecision is the number of bounded store calls made while a
// user's lock is held: prior flag, count, sum, insert.
const storeCallsPerDecision = 4

// ValidateAntifraud rejects settings the engine cannot honour. A Redis lock
// must outlive every store call of one decision, even if it is never extended.
func ValidateAntifraud(cfg models.AntifraudConfig) error {
	if cfg.MaxTransactionsPerWindow <= 0 {
		return fmt.Errorf("MAX_TRANSACTIONS_PER_WINDOW must be positive, got %d", cfg.MaxTransactionsPerWindow)
	}
	if cfg.VelocityWindow <= 0 || cfg.AmountWindow <= 0 {
		return fmt.Errorf("VELOCITY_WINDOW and AMOUNT_WINDOW must be positive")
	}
	if !cfg.MaxAmountPerWindow.IsPositive() {
		return fmt.Errorf("MAX_AMOUNT_PER_DAY must be positive, got %s", cfg.MaxAmountPerWindow)
	}

	switch cfg.LockBackend {
	case "local":
	case "redis":
		if cfg.StoreTimeout <= 0 {
			return fmt.Errorf("STORE_TIMEOUT must be set when LOCK_BACKEND=redis")
		}
		if budget := storeCallsPerDecision * cfg.StoreTimeout; cfg.LockTTL <= budget {
			return fmt.Errorf("LOCK_TTL %s must exceed %d x STORE_TIMEOUT (%s)", cfg.LockTTL, storeCallsPerDecision, budget)
		}
	default:
		return fmt.Errorf("unknown LOCK_BACKEND %q", cfg.LockBackend)
	}
	return nil
}
