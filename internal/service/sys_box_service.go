package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/mongo"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const unreadCacheTTL = 5 * time.Minute

type SysBoxService interface {
	GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error)
	GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error)
	MarkRead(ctx context.Context, userID string, msgID string) error
	MarkAllRead(ctx context.Context, userID string) error
	// Notify 根据领域事件生成通知，自己对自己的操作不通知
	Notify(ctx context.Context, evt *model.SocialEvent) error
}

type sysBoxServiceImpl struct {
	sysBoxRepo mongo.SysBoxRepo
	userRepo   repository.UserRepo
}

func NewSysBoxService(sysBox mongo.SysBoxRepo, user repository.UserRepo) SysBoxService {
	return &sysBoxServiceImpl{
		sysBoxRepo: sysBox,
		userRepo:   user,
	}
}

// GetNotificationList 获取通知列表并补全发送者信息
func (s *sysBoxServiceImpl) GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	page, pageSize = util.NormalizePage(page, pageSize, consts.DefaultPageSize, consts.MaxPageSize)
	list, err := s.sysBoxRepo.GetNotificationList(ctx, userID, int64(pageSize), int64((page-1)*pageSize))
	if err != nil {
		return nil, err
	}

	senderIDs := make([]primitive.ObjectID, 0, len(list))
	for _, m := range list {
		if id, ok := util.ParseObjectID(m.SenderID); ok {
			senderIDs = append(senderIDs, id)
		}
	}
	senders, err := s.userRepo.GetUserByIds(ctx, lo.Uniq(senderIDs))
	if err != nil {
		return nil, err
	}
	senderMap := lo.KeyBy(senders, func(u *model.User) string { return u.ID.Hex() })

	res := make([]*dto.SysBoxDTO, 0, len(list))
	for _, m := range list {
		d := &dto.SysBoxDTO{}
		_ = copier.CopyWithOption(d, m, copyOption)
		d.ID = m.ID.Hex()
		d.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)

		if sender, ok := senderMap[m.SenderID]; ok {
			d.SenderName = sender.Name
			d.AvatarURL = sender.AvatarURL
		} else if m.SenderID == "" {
			d.SenderName = "系统通知"
		}
		res = append(res, d)
	}
	return res, nil
}

// GetUnreadCount 未读数短暂缓存，新通知与已读操作会清除缓存
func (s *sysBoxServiceImpl) GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error) {
	key := consts.SysBoxUnreadKey + userID
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		if count, err := strconv.ParseInt(val, 10, 64); err == nil {
			return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
		}
	}

	count, err := s.sysBoxRepo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	_ = redis.SetWithExpiration(ctx, key, count, unreadCacheTTL)
	return &dto.SysBoxUnreadDTO{UnreadCount: count}, nil
}

// MarkRead 标记单条已读
func (s *sysBoxServiceImpl) MarkRead(ctx context.Context, userID string, msgID string) error {
	objectID, ok := util.ParseObjectID(msgID)
	if !ok {
		return ErrParamInvalid
	}

	notice, err := s.sysBoxRepo.GetByID(ctx, objectID)
	if err != nil {
		return err
	}
	if notice == nil {
		return ErrSysBoxNotFound
	}
	if notice.ReceiverID != userID {
		return ErrForbidden
	}
	if notice.IsRead {
		return nil
	}

	if err = s.sysBoxRepo.MarkAsRead(ctx, userID, objectID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.SysBoxUnreadKey+userID)
	return nil
}

// MarkAllRead 一键已读
func (s *sysBoxServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.sysBoxRepo.MarkAllAsRead(ctx, userID); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.SysBoxUnreadKey+userID)
	return nil
}

func (s *sysBoxServiceImpl) Notify(ctx context.Context, evt *model.SocialEvent) error {
	if evt.OwnerID == "" || evt.OwnerID == evt.ActorID {
		return nil
	}

	msg := &mongo.SysBoxModel{
		ReceiverID: evt.OwnerID,
		SenderID:   evt.ActorID,
		TargetID:   evt.TargetID,
		CreatedAt:  evt.OccurredAt,
	}
	switch evt.Type {
	case model.EventReaction:
		if evt.Result != "added" && evt.Result != "updated" {
			return nil
		}
		msg.Type = mongo.SysBoxTypeReaction
		msg.Payload = map[string]any{"reaction": evt.Detail}
	case model.EventFavorite:
		if evt.Result != "added" {
			return nil
		}
		msg.Type = mongo.SysBoxTypeFavorite
	case model.EventComment:
		if evt.Result != "added" {
			return nil
		}
		msg.Type = mongo.SysBoxTypeComment
		msg.Content = truncateRunes(evt.Detail, 100)
	case model.EventFollow:
		if evt.Result != "followed" {
			return nil
		}
		msg.Type = mongo.SysBoxTypeFollow
	default:
		return nil
	}
	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	if err := s.sysBoxRepo.CreateNotification(ctx, msg); err != nil {
		return err
	}
	_ = redis.DeleteKey(ctx, consts.SysBoxUnreadKey+evt.OwnerID)
	return nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
