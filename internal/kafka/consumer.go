package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// InvoiceHandler processes one decoded invoice lifecycle event.
type InvoiceHandler func(ctx context.Context, event InvoiceEvent) error

type Consumer struct {
	reader *kafka.Reader
	log    logrus.FieldLogger
}

func NewConsumer(brokers []string, groupID, topic string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		log: logrus.StandardLogger(),
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume reads invoice events until the context is canceled or the handler
// fails. Messages that do not decode as an InvoiceEvent are logged and
// skipped so one malformed record cannot wedge the group.
func (c *Consumer) Consume(ctx context.Context, handler InvoiceHandler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}

		if err := c.dispatch(ctx, msg, handler); err != nil {
			return err
		}
	}
}

func (c *Consumer) dispatch(ctx context.Context, msg kafka.Message, handler InvoiceHandler) error {
	var event InvoiceEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"topic":  msg.Topic,
			"offset": msg.Offset,
		}).Warn("skipping undecodable invoice event")
		return nil
	}
	return handler(ctx, event)
}
