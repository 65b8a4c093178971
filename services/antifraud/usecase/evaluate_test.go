package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/circuitbreaker"
	"github.com/efkobus/antifraud-system/internal/pkg/constants"
	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/services/antifraud"
	"github.com/efkobus/antifraud-system/services/antifraud/mocks"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var evalTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func TestEvaluate_Approve(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	gomock.InOrder(
		mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), int64(7)).Return(false, nil),
		mockRepo.EXPECT().CountSince(gomock.Any(), int64(7), evalTime.Add(-2*time.Minute)).Return(2, nil),
		mockRepo.EXPECT().SumSince(gomock.Any(), int64(7), evalTime.Add(-24*time.Hour)).Return(decimal.NewFromInt(400), nil),
		mockRepo.EXPECT().InsertApproved(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, txn *models.Transaction) error {
				assert.Equal(t, int64(1), txn.TransactionID)
				assert.Equal(t, evalTime, txn.Timestamp)
				assert.Equal(t, "600", txn.Amount.String())
				assert.Len(t, txn.CardHash, 64)
				assert.NotContains(t, txn.CardHash, "9116")
				return nil
			}),
	)

	// Act
	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "600"))

	// Assert
	assert.NoError(t, err)
	assert.True(t, decision.Approved())
	assert.Equal(t, models.ReasonNone, decision.Reason)
}

func TestEvaluate_PriorChargebackShortCircuits(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), int64(7)).Return(true, nil)

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "1"))

	assert.NoError(t, err)
	assert.Equal(t, models.VerdictDeny, decision.Verdict)
	assert.Equal(t, models.ReasonPriorChargeback, decision.Reason)
}

func TestEvaluate_VelocityRule(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), int64(7)).Return(false, nil)
	mockRepo.EXPECT().CountSince(gomock.Any(), int64(7), evalTime.Add(-2*time.Minute)).Return(3, nil)

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "1"))

	assert.NoError(t, err)
	assert.Equal(t, models.ReasonVelocity, decision.Reason)
	assert.False(t, decision.Approved())
}

func TestEvaluate_AmountRuleBoundary(t *testing.T) {
	tests := []struct {
		name     string
		sum      string
		amount   string
		approved bool
	}{
		{"Exactly at the ceiling approves", "400", "600", true},
		{"One cent over denies", "400", "600.01", false},
		{"Amount is rounded to cents first", "400", "600.004", true},
		{"Single transaction over ceiling", "0", "1000.50", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockRepo := mocks.NewMockAntifraudRepo(ctrl)
			uc := newTestUC(t, mockRepo)

			mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(false, nil)
			mockRepo.EXPECT().CountSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
			mockRepo.EXPECT().SumSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.RequireFromString(tt.sum), nil)
			if tt.approved {
				mockRepo.EXPECT().InsertApproved(gomock.Any(), gomock.Any()).Return(nil)
			}

			decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", tt.amount))

			assert.NoError(t, err)
			assert.Equal(t, tt.approved, decision.Approved())
			if !tt.approved {
				assert.Equal(t, models.ReasonAmount, decision.Reason)
			}
		})
	}
}

func TestEvaluate_UnparsableTimestampIsNeverStored(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// no repository call is expected
	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "not-a-date", "10"))

	assert.ErrorIs(t, err, antifraud.ErrUnparsableTimestamp)
	assert.Equal(t, models.VerdictDeny, decision.Verdict)
	assert.Equal(t, models.ReasonInvalidTimestamp, decision.Reason)
}

func TestEvaluate_InvalidTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := newTestUC(t, mocks.NewMockAntifraudRepo(ctrl))

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "-5"))

	assert.ErrorIs(t, err, antifraud.ErrInvalidTransaction)
	assert.Equal(t, models.ReasonInvalid, decision.Reason)
}

func TestEvaluate_StoreFailuresFailClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))

	assert.ErrorIs(t, err, antifraud.ErrStoreUnavailable)
	assert.Equal(t, models.VerdictDeny, decision.Verdict)
	assert.Equal(t, models.ReasonStoreUnavailable, decision.Reason)
}

func TestEvaluate_Timeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)
	uc.cfg.StoreTimeout = 20 * time.Millisecond

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(false, nil)
	mockRepo.EXPECT().CountSince(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ int64, _ time.Time) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))

	assert.ErrorIs(t, err, antifraud.ErrTimeout)
	assert.Equal(t, models.ReasonTimeout, decision.Reason)
	assert.False(t, decision.Approved())
}

func TestEvaluate_DuplicateIDOnLivePath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(false, nil)
	mockRepo.EXPECT().CountSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	mockRepo.EXPECT().SumSince(gomock.Any(), gomock.Any(), gomock.Any()).Return(decimal.Zero, nil)
	mockRepo.EXPECT().InsertApproved(gomock.Any(), gomock.Any()).
		Return(fmt.Errorf("%w: 1", antifraud.ErrDuplicateTransaction))

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))

	assert.ErrorIs(t, err, antifraud.ErrDuplicateTransaction)
	assert.Equal(t, models.ReasonDuplicate, decision.Reason)
	assert.False(t, decision.Approved())
}

func TestEvaluate_LockUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := newTestUC(t, mocks.NewMockAntifraudRepo(ctrl))
	uc.cfg.LockWait = 20 * time.Millisecond

	lease, err := uc.locker.Lock(context.Background(), fmt.Sprintf(constants.KeyUserLock, 7))
	require.NoError(t, err)
	defer lease.Release()

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))

	assert.ErrorIs(t, err, antifraud.ErrLockUnavailable)
	assert.Equal(t, models.ReasonLockUnavailable, decision.Reason)
}

func TestEvaluate_PanicBecomesDeny(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo)

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, int64) (bool, error) { panic("boom") })

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))

	assert.Error(t, err)
	assert.Equal(t, models.VerdictDeny, decision.Verdict)
	assert.Equal(t, models.ReasonInternal, decision.Reason)

	// the user lock was released on the way out
	decisionAfter, _ := func() (models.Decision, error) {
		mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(true, nil)
		return uc.Evaluate(context.Background(), request(2, 7, "2024-03-01T12:00:01Z", "10"))
	}()
	assert.Equal(t, models.ReasonPriorChargeback, decisionAfter.Reason)
}

func TestEvaluate_OpenBreakerFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cfg := circuitbreaker.DefaultConfig("store")
	cfg.MinRequests = 1
	cfg.Timeout = time.Hour
	cb := circuitbreaker.New(cfg, logger.NewNopLogger(), nil)

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	uc := newTestUC(t, mockRepo, WithBreaker(cb))

	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused")).Times(1)

	_, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))
	assert.ErrorIs(t, err, antifraud.ErrStoreUnavailable)

	decision, err := uc.Evaluate(context.Background(), request(2, 7, "2024-03-01T12:00:00Z", "10"))
	assert.ErrorIs(t, err, circuitbreaker.ErrCircuitBreakerOpen)
	assert.Equal(t, models.ReasonStoreUnavailable, decision.Reason)
}

func TestEvaluate_PublishesDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	mockGW := mocks.NewMockDecisionGW(ctrl)
	uc := newTestUC(t, mockRepo, WithGateway(mockGW))

	published := make(chan models.Decision, 1)
	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(true, nil)
	mockGW.EXPECT().PublishDecision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d models.Decision) error {
			published <- d
			return errors.New("broker down")
		})

	decision, err := uc.Evaluate(context.Background(), request(1, 7, "2024-03-01T12:00:00Z", "10"))
	uc.Close()

	// a failed publish never changes the verdict
	assert.NoError(t, err)
	assert.Equal(t, models.VerdictDeny, decision.Verdict)
	event := <-published
	assert.Equal(t, int64(1), event.TransactionID)
	assert.Equal(t, models.ReasonPriorChargeback, event.Reason)
}

func TestEvaluate_SlowBrokerDoesNotDelayVerdict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockAntifraudRepo(ctrl)
	mockGW := mocks.NewMockDecisionGW(ctrl)
	uc := newTestUC(t, mockRepo, WithGateway(mockGW))

	release := make(chan struct{})
	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
	mockGW.EXPECT().PublishDecision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Decision) error {
			<-release
			return nil
		}).Times(2)

	start := time.Now()
	for id := int64(1); id <= 2; id++ {
		decision, err := uc.Evaluate(context.Background(), request(id, 7, "2024-03-01T12:00:00Z", "10"))
		require.NoError(t, err)
		assert.Equal(t, models.ReasonPriorChargeback, decision.Reason)
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)

	close(release)
	uc.Close()
	// after Close nothing is published and nothing blocks
	mockRepo.EXPECT().HasPriorChargeback(gomock.Any(), gomock.Any()).Return(true, nil)
	_, err := uc.Evaluate(context.Background(), request(3, 7, "2024-03-01T12:00:00Z", "10"))
	assert.NoError(t, err)
}

func TestDecisionEvents_DropsWhenFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockGW := mocks.NewMockDecisionGW(ctrl)
	release := make(chan struct{})
	mockGW.EXPECT().PublishDecision(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, models.Decision) error {
			<-release
			return nil
		}).Times(2)

	events := newDecisionEvents(mockGW, logger.NewNopLogger(), 1)
	events.enqueue(models.Decision{TransactionID: 1})
	// wait until the worker holds the first event, leaving the queue empty
	require.Eventually(t, func() bool { return len(events.queue) == 0 }, time.Second, time.Millisecond)
	events.enqueue(models.Decision{TransactionID: 2})
	events.enqueue(models.Decision{TransactionID: 3}) // dropped

	close(release)
	events.close()
}

func TestIsStoreFailure(t *testing.T) {
	assert.False(t, IsStoreFailure(nil))
	assert.False(t, IsStoreFailure(fmt.Errorf("%w: 9", antifraud.ErrDuplicateTransaction)))
	assert.True(t, IsStoreFailure(errors.New("connection reset")))
}
