package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the part of *kafka.Writer the sink uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Kafka publishes each audit line to a topic, keyed by event id so every entry
// about one event lands on the same partition.
type Kafka struct {
	writer messageWriter
}

// NewKafka creates a writer for topic on brokers.
func NewKafka(brokers []string, topic string) *Kafka {
	slog.Info("[Sink] Kafka audit sink configured", "brokers", brokers, "topic", topic)
	return &Kafka{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

func (k *Kafka) Write(ctx context.Context, entry Entry) error {
	err := k.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(entry.EventID),
		Value: []byte(entry.Line),
		Time:  entry.Timestamp,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(entry.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to publish audit line: %w", err)
	}
	return nil
}

func (k *Kafka) Close() error {
	return k.writer.Close()
}
