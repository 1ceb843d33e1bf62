package kafka

import (
	"Inkwell/internal/api/config"
	"Inkwell/internal/pkg/logger"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
)

// ConsumerManager 管理领域事件的两个消费组
type ConsumerManager struct {
	topic string

	notifyConsumer sarama.ConsumerGroup
	notifyHandler  sarama.ConsumerGroupHandler

	searchConsumer sarama.ConsumerGroup
	searchHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	sysBoxSvc service.SysBoxService,
	searchSvc service.SearchService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	notifyConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEvent.NotifyGroupID, saramaCfg)
	if err != nil {
		return nil, err
	}

	searchConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEvent.SearchGroupID, saramaCfg)
	if err != nil {
		_ = notifyConsumer.Close()
		return nil, err
	}

	return &ConsumerManager{
		topic:          cfg.KafkaEvent.Topic,
		notifyConsumer: notifyConsumer,
		notifyHandler:  NewNotifyHandler(sysBoxSvc),
		searchConsumer: searchConsumer,
		searchHandler:  NewSearchSyncHandler(searchSvc),
	}, nil
}

// Start 启动所有消费者，ctx 结束后关闭并返回
func (m *ConsumerManager) Start(ctx context.Context) error {
	go m.consume(ctx, "notify", m.notifyConsumer, m.notifyHandler)
	go m.consume(ctx, "search", m.searchConsumer, m.searchHandler)

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.notifyConsumer.Close(); err != nil {
		log.Error("Failed to close notify consumer", "err", err)
	}
	if err := m.searchConsumer.Close(); err != nil {
		log.Error("Failed to close search consumer", "err", err)
	}
	return nil
}

func (m *ConsumerManager) consume(ctx context.Context, name string, group sarama.ConsumerGroup, handler sarama.ConsumerGroupHandler) {
	log.Info("consumer started", "group", name, "topic", m.topic)
	go func() {
		for err := range group.Errors() {
			log.Error("consumer group error", "group", name, "err", err)
		}
	}()
	for {
		if err := group.Consume(ctx, []string{m.topic}, handler); err != nil {
			log.Error("Error from consumer", "group", name, "err", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func withEventTrace(ctx context.Context, group string) context.Context {
	return context.WithValue(ctx, logger.TraceIDKey, "kafka-"+group+"-"+uuid.NewString())
}
