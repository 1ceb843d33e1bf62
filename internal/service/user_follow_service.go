package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/metrics"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"Inkwell/internal/social"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type UserFollowService interface {
	ToggleFollow(ctx context.Context, currentID, targetID primitive.ObjectID) (*dto.FollowResultDTO, error)
	GetSuggestions(ctx context.Context, currentID primitive.ObjectID) ([]social.Suggestion, error)
}

type userFollowServiceImpl struct {
	userRepo  repository.UserRepo
	publisher EventPublisher
	pageSize  int
	cacheTTL  time.Duration
}

func NewUserFollowService(userRepo repository.UserRepo, publisher EventPublisher, pageSize int, cacheTTL time.Duration) UserFollowService {
	if pageSize <= 0 {
		pageSize = consts.DefaultSuggestionPageSize
	}
	return &userFollowServiceImpl{
		userRepo:  userRepo,
		publisher: publisher,
		pageSize:  pageSize,
		cacheTTL:  cacheTTL,
	}
}

// ToggleFollow 关注/取关，只增删这一条关注关系，双方列表在同一次调用中写回
func (s *userFollowServiceImpl) ToggleFollow(ctx context.Context, currentID, targetID primitive.ObjectID) (*dto.FollowResultDTO, error) {
	if currentID == targetID {
		return nil, social.ErrSelfFollow
	}

	current, err := s.userRepo.GetUserById(ctx, currentID)
	if err != nil {
		return nil, err
	}
	target, err := s.userRepo.GetUserById(ctx, targetID)
	if err != nil {
		return nil, err
	}
	if current == nil || target == nil {
		return nil, ErrUserNotFound
	}

	result, err := social.ToggleFollow(current, target)
	if err != nil {
		return nil, err
	}
	if err = s.userRepo.SaveFollowEdge(ctx, currentID, targetID, result.Followed); err != nil {
		return nil, err
	}
	// 粉丝数以库中为准，其他用户可能同时关注了对方
	if fresh, err := s.userRepo.GetUserById(ctx, targetID); err != nil {
		log.WarnContext(ctx, "reload follow target failed", "target_id", targetID.Hex(), "err", err)
	} else if fresh != nil {
		result.FollowersCount = len(fresh.Followers)
	}

	if err = redis.DeleteKey(ctx, consts.UserSuggestionKey+currentID.Hex()); err != nil {
		log.WarnContext(ctx, "invalidate suggestion cache failed", "user_id", currentID.Hex(), "err", err)
	}

	action := "unfollowed"
	if result.Followed {
		action = "followed"
	}
	metrics.RecordToggle("follow", action)
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventFollow,
		ActorID:  currentID.Hex(),
		TargetID: targetID.Hex(),
		OwnerID:  targetID.Hex(),
		Result:   action,
	})

	return &dto.FollowResultDTO{
		Followed:       result.Followed,
		FollowersCount: result.FollowersCount,
		Following:      util.IDsToHex(result.Following),
	}, nil
}

// GetSuggestions 二度好友推荐，两个候选池并发读取后在本地合并排序
func (s *userFollowServiceImpl) GetSuggestions(ctx context.Context, currentID primitive.ObjectID) ([]social.Suggestion, error) {
	key := consts.UserSuggestionKey + currentID.Hex()
	var cached []social.Suggestion
	hit, err := redis.GetJSON(ctx, key, &cached)
	if err != nil {
		log.WarnContext(ctx, "read suggestion cache failed", "err", err)
	}
	metrics.RecordCache("suggestion", hit)
	if hit {
		return cached, nil
	}

	current, err := s.userRepo.GetUserById(ctx, currentID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrUserNotFound
	}

	var friendsOfFriends, popular []*model.User
	g, gctx := errgroup.WithContext(ctx)
	if len(current.Following) > 0 {
		g.Go(func() error {
			var err error
			friendsOfFriends, err = s.userRepo.FindFriendsOfFriends(gctx, current.ID, current.Following)
			return err
		})
	}
	g.Go(func() error {
		var err error
		exclude := append([]primitive.ObjectID{current.ID}, current.Following...)
		popular, err = s.userRepo.FindPopularUsers(gctx, exclude, int64(s.pageSize))
		return err
	})
	if err = g.Wait(); err != nil {
		return nil, err
	}

	suggestions := social.RankSuggestions(current, friendsOfFriends, popular, s.pageSize)

	if s.cacheTTL > 0 {
		if err = redis.SetJSON(ctx, key, suggestions, s.cacheTTL); err != nil {
			log.WarnContext(ctx, "write suggestion cache failed", "err", err)
		}
	}
	return suggestions, nil
}
