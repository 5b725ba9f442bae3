// Package kafkaqueue publishes order integration events to Kafka for
// consumers outside this process. Publishing is an isolated post-commit side
// effect, so a broker outage never rolls back a committed transition.
package kafkaqueue

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"laundryops/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const defaultTopic = "laundryops.order-events"

// Publisher implements OrderEventPublisher on a kafka-go writer.
// Messages are keyed by order id so all events of one order land on the
// same partition and keep their relative order.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a publisher for the given brokers and topic.
// An empty topic falls back to the default order-events topic.
func NewPublisher(brokersCSV, topic string) *Publisher {
	if topic == "" {
		topic = defaultTopic
	}

	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(parseBrokers(brokersCSV)...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// PublishOrderStatusChanged publishes a committed transition as JSON.
func (p *Publisher) PublishOrderStatusChanged(ctx context.Context, event ports.OrderStatusChanged) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(event.OrderID.String()),
		Value: payload,
		Time:  time.Now().UTC(),
	})
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func parseBrokers(brokersCSV string) []string {
	brokers := make([]string, 0)
	for _, broker := range strings.Split(brokersCSV, ",") {
		broker = strings.TrimSpace(broker)
		if broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
