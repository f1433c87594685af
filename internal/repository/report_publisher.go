package repository

import (
	"context"
	"fmt"

	"btcwave/internal/domain/models"
	"btcwave/pkg/kafka"
)

// KafkaReportPublisher forwards finished reports to a Kafka topic as
// JSON, keyed by recommendation text so downstream consumers can
// partition by advice.
type KafkaReportPublisher struct {
	producer *kafka.Producer
	topic    string
}

func NewKafkaReportPublisher(producer *kafka.Producer, topic string) *KafkaReportPublisher {
	return &KafkaReportPublisher{producer: producer, topic: topic}
}

func (p *KafkaReportPublisher) Publish(ctx context.Context, r *models.Report) error {
	if err := p.producer.Publish(ctx, p.topic, []byte(r.Recommendation.Text), r); err != nil {
		return fmt.Errorf("publish report: %w", err)
	}
	return nil
}

func (p *KafkaReportPublisher) Close() error {
	return p.producer.Close()
}
