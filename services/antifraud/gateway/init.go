package gateway

import (
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/models"
	natspkg "github.com/efkobus/antifraud-system/internal/pkg/nats"
	nsqpkg "github.com/efkobus/antifraud-system/internal/pkg/nsq"
	"github.com/efkobus/antifraud-system/services/antifraud"
)

// Publisher sends one JSON message to a topic or subject.
// Both the NATS and the NSQ producers satisfy it.
type Publisher interface {
	Publish(topic string, message interface{}) error
}

// NewDecisionGW picks the publisher named by cfg.Events.Broker. It returns a
// nil gateway when decision events are disabled.
func NewDecisionGW(cfg *models.Config, natsClient *natspkg.Client, nsqProducer *nsqpkg.Producer) (antifraud.DecisionGW, error) {
	switch cfg.Events.Broker {
	case "", "none":
		return nil, nil
	case "nats":
		if natsClient == nil {
			return nil, fmt.Errorf("decision events on nats need NATS_URL")
		}
		return NewPublisherGW(natspkg.NewProducer(natsClient), cfg.Events.Topic), nil
	case "nsq":
		if nsqProducer == nil {
			return nil, fmt.Errorf("decision events on nsq need NSQ_ADDRESS")
		}
		return NewPublisherGW(nsqProducer, cfg.Events.Topic), nil
	default:
		return nil, fmt.Errorf("unknown events broker %q", cfg.Events.Broker)
	}
}
