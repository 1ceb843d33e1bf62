package kafka

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/metrics"
	"Inkwell/internal/service"
	"context"
	log "log/slog"

	"github.com/IBM/sarama"
)

// SearchSyncHandler 以 MongoDB 为准刷新 ES 中的帖子与用户文档
type SearchSyncHandler struct {
	searchSvc service.SearchService
}

func NewSearchSyncHandler(searchSvc service.SearchService) *SearchSyncHandler {
	return &SearchSyncHandler{searchSvc: searchSvc}
}

func (h *SearchSyncHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("search sync consumer setup")
	return nil
}

func (h *SearchSyncHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("search sync consumer cleanup")
	return nil
}

func (h *SearchSyncHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	return pullMessageBatch(session, claim, h.handle)
}

func (h *SearchSyncHandler) handle(ctx context.Context, msg *sarama.ConsumerMessage) error {
	evt, err := ToSocialEvent(msg)
	if err != nil {
		log.Warn("skip invalid event", "offset", msg.Offset, "err", err)
		return nil
	}
	ctx = withEventTrace(ctx, "search")

	switch evt.Type {
	case model.EventPostCreated, model.EventPostUpdated, model.EventPostDeleted, model.EventReaction, model.EventFavorite:
		err = h.searchSvc.SyncPost(ctx, evt.TargetID)
	case model.EventUserUpdated, model.EventFollow:
		err = h.searchSvc.SyncUser(ctx, evt.TargetID)
	default:
		return nil
	}
	metrics.RecordEvent("search", string(evt.Type), err)
	return err
}
