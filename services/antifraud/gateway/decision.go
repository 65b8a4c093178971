package gateway

import (
	"context"

	"github.com/efkobus/antifraud-system/internal/pkg/constants"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/efkobus/antifraud-system/internal/pkg/timeutil"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

// DecisionEvent is the payload published for every verdict
type DecisionEvent struct {
	TransactionID  int64  `json:"transaction_id"`
	UserID         int64  `json:"user_id"`
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason,omitempty"`
	EvaluatedAt    string `json:"evaluated_at"`
}

type publisherGW struct {
	publisher Publisher
	topic     string
}

// NewPublisherGW publishes decisions on topic, falling back to antifraud.decisions
func NewPublisherGW(publisher Publisher, topic string) antifraud.DecisionGW {
	if topic == "" {
		topic = constants.SubjectDecisions
	}
	return &publisherGW{
		publisher: publisher,
		topic:     topic,
	}
}

// PublishDecision publishes a decision event
func (g *publisherGW) PublishDecision(ctx context.Context, decision models.Decision) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return g.publisher.Publish(g.topic, DecisionEvent{
		TransactionID:  decision.TransactionID,
		UserID:         decision.UserID,
		Recommendation: string(decision.Verdict),
		Reason:         string(decision.Reason),
		EvaluatedAt:    timeutil.Format(decision.EvaluatedAt),
	})
}
