package repository

import (
	"context"
	"fmt"

	"GoldPulse/internal/domain/models"
	"GoldPulse/pkg/kafka"
)

// EventPublisher emits analysis events to a Kafka topic keyed by code,
// so every instrument's history lands in one partition in order.
type EventPublisher struct {
	producer *kafka.Producer
	topic    string
}

// NewEventPublisher creates a Kafka backed event publisher.
func NewEventPublisher(producer *kafka.Producer, topic string) *EventPublisher {
	return &EventPublisher{producer: producer, topic: topic}
}

// Publish sends one analysis event.
func (p *EventPublisher) Publish(ctx context.Context, e *models.AnalysisEvent) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(e.Code), e); err != nil {
		return fmt.Errorf("publish analysis event for %s: %w", e.Code, err)
	}
	return nil
}

// Close shuts the underlying producer down.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}
