package antifraud

import (
	"context"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/efkobus/antifraud-system/services/antifraud DecisionGW

// DecisionGW publishes decisions to downstream consumers
type DecisionGW interface {
	PublishDecision(ctx context.Context, decision models.Decision) error
}
