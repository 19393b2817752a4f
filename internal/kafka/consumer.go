package kafka

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"
)

type Consumer struct {
	reader *kafka.Reader
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
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume delivers decoded notification events to the handler until the
// context is canceled or the reader fails. Undecodable, invalid, and
// unprocessable events are logged and skipped so one bad message cannot
// stall the stream.
func (c *Consumer) Consume(ctx context.Context, handler func(context.Context, NotificationEvent) error) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			return err
		}
		consumeMessage(ctx, msg.Value, handler)
	}
}

func consumeMessage(ctx context.Context, value []byte, handler func(context.Context, NotificationEvent) error) {
	var event NotificationEvent
	if err := json.Unmarshal(value, &event); err != nil {
		log.Printf("decode event error: %v", err)
		return
	}
	if err := event.Validate(); err != nil {
		log.Printf("drop event %s: %v", event.BookingID, err)
		return
	}
	if err := handler(ctx, event); err != nil {
		log.Printf("handle event %s error: %v", event.BookingID, err)
	}
}
