package repository

import (
	"context"
	"time"

	domrepo "EcoBoard/internal/domain/repository"
	pkgkafka "EcoBoard/pkg/kafka"
)

// KafkaEvents announces upstream refreshes on a topic so downstream
// consumers (signage CMS, audit tooling) can react without polling.
type KafkaEvents struct {
	producer *pkgkafka.Producer
	topic    string
}

func NewKafkaEvents(producer *pkgkafka.Producer, topic string) domrepo.EventPublisher {
	return &KafkaEvents{producer: producer, topic: topic}
}

func (p *KafkaEvents) PublishRefresh(ctx context.Context, domain, source string, at time.Time) error {
	return p.producer.Publish(ctx, p.topic, []byte(domain), map[string]interface{}{
		"domain": domain,
		"source": source,
		"at":     at.UTC().Format(time.RFC3339),
	})
}

func (p *KafkaEvents) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
