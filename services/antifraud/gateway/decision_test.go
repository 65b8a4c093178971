package gateway

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/efkobus/antifraud-system/internal/pkg/constants"
	"github.com/efkobus/antifraud-system/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	topic   string
	message interface{}
	err     error
}

func (p *capturePublisher) Publish(topic string, message interface{}) error {
	p.topic = topic
	p.message = message
	return p.err
}

func TestPublishDecision(t *testing.T) {
	pub := &capturePublisher{}
	gw := NewPublisherGW(pub, "")

	err := gw.PublishDecision(context.Background(), models.Decision{
		TransactionID: 1,
		UserID:        2,
		Verdict:       models.VerdictDeny,
		Reason:        models.ReasonVelocity,
		EvaluatedAt:   time.Date(2024, 3, 1, 9, 0, 0, 0, time.FixedZone("BRT", -3*3600)),
	})

	require.NoError(t, err)
	assert.Equal(t, constants.SubjectDecisions, pub.topic)
	assert.Equal(t, DecisionEvent{
		TransactionID:  1,
		UserID:         2,
		Recommendation: "deny",
		Reason:         "velocity",
		EvaluatedAt:    "2024-03-01T12:00:00Z",
	}, pub.message)
}

func TestPublishDecision_Errors(t *testing.T) {
	pub := &capturePublisher{err: errors.New("broker down")}
	gw := NewPublisherGW(pub, "custom.topic")

	err := gw.PublishDecision(context.Background(), models.Decision{TransactionID: 1})
	assert.EqualError(t, err, "broker down")
	assert.Equal(t, "custom.topic", pub.topic)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pub.topic = ""
	err = gw.PublishDecision(ctx, models.Decision{TransactionID: 1})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, pub.topic)
}

func TestNewDecisionGW(t *testing.T) {
	tests := []struct {
		name    string
		broker  string
		wantNil bool
		wantErr bool
	}{
		{"Disabled", "none", true, false},
		{"Empty", "", true, false},
		{"NATS without client", "nats", true, true},
		{"NSQ without producer", "nsq", true, true},
		{"Unknown broker", "kafka", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &models.Config{}
			cfg.Events.Broker = tt.broker

			gw, err := NewDecisionGW(cfg, nil, nil)

			assert.Equal(t, tt.wantErr, err != nil)
			assert.Equal(t, tt.wantNil, gw == nil)
		})
	}
}
