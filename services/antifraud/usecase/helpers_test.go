package usecase

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/cardhash"
	"github.com/efkobus/antifraud-system/internal/pkg/keylock"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const testCard = "434505******9116"

func testConfig() models.AntifraudConfig {
	return models.AntifraudConfig{
		MaxTransactionsPerWindow: 3,
		VelocityWindow:           2 * time.Minute,
		MaxAmountPerWindow:       decimal.NewFromInt(1000),
		AmountWindow:             24 * time.Hour,
		MaxTransactionAmount:     decimal.NewFromInt(1000000),
		StoreTimeout:             time.Second,
		LockWait:                 time.Second,
	}
}

func newTestUC(t *testing.T, repo antifraud.AntifraudRepo, opts ...Option) *AntifraudUC {
	t.Helper()
	return newTestUCWithLocker(t, repo, keylock.NewLocal(), opts...)
}

func newTestUCWithLocker(t *testing.T, repo antifraud.AntifraudRepo, locker keylock.Locker, opts ...Option) *AntifraudUC {
	t.Helper()
	hasher, err := cardhash.New("test-key")
	require.NoError(t, err)
	return NewAntifraudUC(testConfig(), repo, locker, hasher, logger.NewNopLogger(), opts...)
}

// pauseFirstCount blocks the first CountSince until resume is closed and
// closes entered once it is parked there
func pauseFirstCount(repo *memoryRepo) (entered, resume chan struct{}) {
	entered, resume = make(chan struct{}), make(chan struct{})
	var calls int32
	repo.beforeCount = func() {
		if atomic.AddInt32(&calls, 1) == 1 {
			close(entered)
			<-resume
		}
	}
	return entered, resume
}

func request(id, userID int64, ts, amount string) *models.TransactionRequest {
	return &models.TransactionRequest{
		TransactionID: id,
		MerchantID:    29744,
		UserID:        userID,
		CardNumber:    testCard,
		Timestamp:     ts,
		Amount:        decimal.RequireFromString(amount),
	}
}
