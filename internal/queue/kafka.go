// Package queue publishes measurement events to Kafka for downstream
// consumers (dashboards, alerting). Publishing is best effort from the
// pipeline's point of view: a publish failure never fails the item.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Ecocity-The-Try-People/ecocity-traffic-prediction/internal/models"
)

// MeasurementEvent is the wire form of a processed measurement. Events are
// keyed by location identity so a partition carries one location's history
// in order.
type MeasurementEvent struct {
	MeasurementID   string                 `json:"measurement_id"`
	ImageID         string                 `json:"image_id"`
	LocationID      string                 `json:"location_id"`
	VehicleNum      int                    `json:"vehicleNum"`
	CongestionLevel models.CongestionLevel `json:"congestionLevel"`
	Suggestion      string                 `json:"suggestion"`
	CreatedDateTime time.Time              `json:"createdDateTime"`
}

// MessageWriter is the subset of kafka.Writer the publisher needs.
// It exists so unit tests can substitute a fake.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher writes measurement events to a Kafka topic.
type Publisher struct {
	writer MessageWriter
}

// NewPublisher creates a Publisher for the given brokers and topic.
// Writes are synchronous so a lost broker surfaces as a logged error on the
// item that hit it, not silent data loss.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{}, // partition by location identity
			RequiredAcks: kafka.RequireOne,
			Async:        false,
		},
	}
}

// NewPublisherWithWriter wraps an existing writer. Used in tests.
func NewPublisherWithWriter(w MessageWriter) *Publisher {
	return &Publisher{writer: w}
}

// Publish sends one measurement event, keyed by its location identity.
func (p *Publisher) Publish(ctx context.Context, event MeasurementEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal measurement event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(event.LocationID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write measurement event: %w", err)
	}
	return nil
}

// Close shuts down the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
