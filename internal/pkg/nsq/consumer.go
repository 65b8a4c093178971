package nsq

import (
	"encoding/json"
	"fmt"

	"github.com/efkobus/antifraud-system/internal/pkg/logger"
	"github.com/nsqio/go-nsq"
)

// MessageHandler processes one message body. A non-nil error requeues the message.
type MessageHandler func(message []byte) error

// ConsumerConfig describes where and how a consumer reads
type ConsumerConfig struct {
	Topic            string
	Channel          string
	Address          string   // nsqd, used when no lookupd is configured
	LookupdAddresses []string // preferred when set
	MaxInFlight      int
	MaxAttempts      uint16
}

// Consumer handles consuming messages from NSQ topics
type Consumer struct {
	consumer *nsq.Consumer
	logger   *logger.ZapLogger
}

// NewConsumer creates a consumer for a topic/channel and connects it
func NewConsumer(cfg ConsumerConfig, handler MessageHandler, l *logger.ZapLogger) (*Consumer, error) {
	config := nsq.NewConfig()
	if cfg.MaxInFlight > 0 {
		config.MaxInFlight = cfg.MaxInFlight
	}
	if cfg.MaxAttempts > 0 {
		config.MaxAttempts = cfg.MaxAttempts
	}

	consumer, err := nsq.NewConsumer(cfg.Topic, cfg.Channel, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create NSQ consumer: %w", err)
	}
	consumer.SetLogger(newNSQLogger(l), nsq.LogLevelWarning)

	log := l.With(logger.String("topic", cfg.Topic), logger.String("channel", cfg.Channel))
	consumer.AddHandler(nsq.HandlerFunc(func(message *nsq.Message) error {
		if err := handler(message.Body); err != nil {
			log.Warn("Error processing message, requeueing",
				logger.Err(err),
				logger.Int("attempts", int(message.Attempts)))
			return err
		}
		return nil
	}))

	c := &Consumer{consumer: consumer, logger: log}
	if err := c.connect(cfg); err != nil {
		consumer.Stop()
		return nil, err
	}
	return c, nil
}

func (c *Consumer) connect(cfg ConsumerConfig) error {
	if len(cfg.LookupdAddresses) > 0 {
		if err := c.consumer.ConnectToNSQLookupds(cfg.LookupdAddresses); err != nil {
			return fmt.Errorf("failed to connect to NSQ lookupd: %w", err)
		}
		return nil
	}
	if err := c.consumer.ConnectToNSQD(cfg.Address); err != nil {
		return fmt.Errorf("failed to connect to NSQ daemon: %w", err)
	}
	return nil
}

// UnmarshalMessage deserializes a JSON message into the provided struct
func UnmarshalMessage(messageBody []byte, v interface{}) error {
	err := json.Unmarshal(messageBody, v)
	if err != nil {
		return fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return nil
}

// Stop gracefully stops the consumer and waits for in-flight handlers
func (c *Consumer) Stop() {
	c.consumer.Stop()
	<-c.consumer.StopChan
}
