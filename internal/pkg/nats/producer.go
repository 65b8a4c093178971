package nats

import (
	"encoding/json"
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
)

// Producer publishes JSON encoded messages over a Client
type Producer struct {
	client *Client
}

// NewProducer creates a producer on an existing client
func NewProducer(client *Client) *Producer {
	return &Producer{client: client}
}

// Publish marshals message and sends it to subject
func (p *Producer) Publish(subject string, message interface{}) error {
	msgBytes, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := p.client.Publish(subject, msgBytes); err != nil {
		return err
	}

	p.client.logger.Debug("Published message", logger.String("subject", subject))
	return nil
}
