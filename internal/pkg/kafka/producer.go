package kafka

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/model"
	"context"
	"fmt"
	log "log/slog"
	"time"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EventProducer 同步投递领域事件
type EventProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewSyncProducer 创建底层 sarama 生产者
func NewSyncProducer(cfg *config.Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Kafka.Brokers, newSaramaConfig(cfg.Kafka))
}

func NewEventProducer(producer sarama.SyncProducer, topic string) *EventProducer {
	return &EventProducer{
		producer: producer,
		topic:    topic,
	}
}

func (p *EventProducer) Publish(ctx context.Context, evt *model.SocialEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	partition, offset, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(evt.Key()),
		Value: sarama.ByteEncoder(value),
	})
	if err != nil {
		return fmt.Errorf("send event: %w", err)
	}

	log.DebugContext(ctx, "event published",
		"type", evt.Type,
		"partition", partition,
		"offset", offset,
	)
	return nil
}

func (p *EventProducer) Close() error {
	return p.producer.Close()
}
