package antifraud

import (
	"context"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/efkobus/antifraud-system/services/antifraud AntifraudRepo

// AntifraudRepo is the persistent store and windowed aggregator
type AntifraudRepo interface {
	// HasPriorChargeback is false for users without a row
	HasPriorChargeback(ctx context.Context, userID int64) (bool, error)

	// CountSince and SumSince consider rows strictly after since
	CountSince(ctx context.Context, userID int64, since time.Time) (int, error)
	SumSince(ctx context.Context, userID int64, since time.Time) (decimal.Decimal, error)

	// InsertApproved writes the transaction and the lazy user row atomically.
	// An existing id yields ErrDuplicateTransaction and changes nothing.
	InsertApproved(ctx context.Context, tx *models.Transaction) error

	// BulkInsert skips ids that already exist and reports how many rows were written
	BulkInsert(ctx context.Context, txs []*models.Transaction) (int, error)

	// TransactionOwner returns the user of a stored transaction
	TransactionOwner(ctx context.Context, transactionID int64) (userID int64, found bool, err error)

	// ApplyChargeback flags the transaction and, when hasChargeback is true,
	// its owner in one database transaction
	ApplyChargeback(ctx context.Context, transactionID int64, hasChargeback bool) (*models.ChargebackResult, error)

	// Reset empties both tables
	Reset(ctx context.Context) error
}
