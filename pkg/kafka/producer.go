// Package kafka provides a fire-and-forget event producer backed by
// segmentio/kafka-go. There is no consumer here: ingest is a synchronous
// CLI verb (cmd/indexer add), not a queue-driven pipeline, so the only
// direction data flows is outward, as a notification after the index has
// already been mutated and dumped.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-librarian/librarian/pkg/config"
	kafkago "github.com/segmentio/kafka-go"
)

// Producer publishes JSON-encoded "document.indexed" events to a single
// Kafka topic.
type Producer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewProducer creates a Producer for cfg.Topic.
func NewProducer(cfg config.KafkaConfig) *Producer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		MaxAttempts:  3,
		RequiredAcks: kafkago.RequireOne,
		Async:        true,
	}
	return &Producer{
		writer: w,
		logger: slog.Default().With("component", "kafka-producer", "topic", cfg.Topic),
	}
}

// PublishIndexed announces that a document finished ingest. It never blocks
// the caller on delivery failure: ingest already succeeded and dumped the
// index by the time this is called, so a Kafka outage must not roll that
// back or fail the CLI invocation. Failures are only logged.
func (p *Producer) PublishIndexed(ctx context.Context, docID uint64, name string) {
	value, err := json.Marshal(struct {
		DocID uint64 `json:"doc_id"`
		Name  string `json:"name"`
	}{DocID: docID, Name: name})
	if err != nil {
		p.logger.Error("failed to marshal event", "error", err)
		return
	}
	msg := kafkago.Message{
		Key:   []byte(fmt.Sprintf("%d", docID)),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Warn("failed to publish document.indexed event", "doc_id", docID, "error", err)
	}
}

// Close flushes pending writes and closes the underlying Kafka writer.
func (p *Producer) Close() error {
	return p.writer.Close()
}
