package antifraud

import (
	"context"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/efkobus/antifraud-system/services/antifraud AntifraudUC

// AntifraudUC is the decision engine and chargeback processor
type AntifraudUC interface {
	// Evaluate always returns a decision. A non-nil error means the deny was
	// caused by a fault rather than a rule.
	Evaluate(ctx context.Context, req *models.TransactionRequest) (models.Decision, error)

	// ApplyChargeback is a no-op for unknown transaction ids
	ApplyChargeback(ctx context.Context, transactionID int64, hasChargeback bool) (*models.ChargebackResult, error)

	// Ingest loads known-past transactions without running the rules
	Ingest(ctx context.Context, records []models.HistoricalRecord) (*models.IngestSummary, error)

	// Replay empties the store and runs records through Evaluate in time order
	Replay(ctx context.Context, records []models.HistoricalRecord) (*models.ReplayReport, error)
}
