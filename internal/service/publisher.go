package service

import (
	"Inkwell/internal/model"
	"context"
	log "log/slog"
	"time"
)

// EventPublisher 领域事件出口，由 kafka.EventProducer 实现
type EventPublisher interface {
	Publish(ctx context.Context, evt *model.SocialEvent) error
}

type nopPublisher struct{}

// NewNopPublisher 未配置 Kafka 时使用，丢弃所有事件
func NewNopPublisher() EventPublisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, *model.SocialEvent) error {
	return nil
}

// publishEvent 写操作已经成功，投递失败只记录日志
func publishEvent(ctx context.Context, p EventPublisher, evt *model.SocialEvent) {
	if p == nil {
		return
	}
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now()
	}
	if err := p.Publish(ctx, evt); err != nil {
		log.WarnContext(ctx, "publish social event failed", "type", evt.Type, "target_id", evt.TargetID, "err", err)
	}
}
