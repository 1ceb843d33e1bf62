package kafka

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/metrics"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// NotifyHandler 写入系统通知，并为指标任务标记脏数据
type NotifyHandler struct {
	sysBoxSvc service.SysBoxService
}

func NewNotifyHandler(sysBoxSvc service.SysBoxService) *NotifyHandler {
	return &NotifyHandler{sysBoxSvc: sysBoxSvc}
}

func (h *NotifyHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer setup")
	return nil
}

func (h *NotifyHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("notify consumer cleanup")
	return nil
}

func (h *NotifyHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, h.handle)
}

func (h *NotifyHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	evt, err := ToSocialEvent(msg)
	if err != nil {
		log.Warn("skip invalid event", "offset", msg.Offset, "err", err)
		return nil
	}
	ctx = withEventTrace(ctx, "notify")

	if err = markDirty(ctx, evt); err != nil {
		return err
	}
	err = h.sysBoxSvc.Notify(ctx, evt)
	metrics.RecordEvent("notify", string(evt.Type), err)
	return err
}

// markDirty 关注变化影响双方的粉丝/关注数，互动变化只影响帖子
func markDirty(ctx context.Context, evt *model.SocialEvent) error {
	switch evt.Type {
	case model.EventFollow:
		return redis.AddToSet(ctx, consts.UserFollowDirtyKey, evt.ActorID, evt.TargetID)
	case model.EventReaction, model.EventFavorite, model.EventComment:
		return redis.AddToSet(ctx, consts.PostDirtyKey, evt.TargetID)
	}
	return nil
}
