package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/metrics"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"Inkwell/internal/social"
	"context"
	log "log/slog"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostActionService interface {
	React(ctx context.Context, userID, postID primitive.ObjectID, reactionType string) (*dto.ReactionResultDTO, error)
	RemoveReaction(ctx context.Context, userID, postID primitive.ObjectID) (*dto.ReactionResultDTO, error)
	ToggleFavorite(ctx context.Context, userID, postID primitive.ObjectID) (*dto.FavoriteResultDTO, error)
}

type postActionServiceImpl struct {
	postRepo  repository.PostRepo
	userRepo  repository.UserRepo
	publisher EventPublisher
}

func NewPostActionService(postRepo repository.PostRepo, userRepo repository.UserRepo, publisher EventPublisher) PostActionService {
	return &postActionServiceImpl{
		postRepo:  postRepo,
		userRepo:  userRepo,
		publisher: publisher,
	}
}

// React 表态切换，只持久化当前用户的那一条，返回持久化后的完整表态列表
func (s *postActionServiceImpl) React(ctx context.Context, userID, postID primitive.ObjectID, reactionType string) (*dto.ReactionResultDTO, error) {
	t := model.ReactionType(reactionType)
	if !t.Valid() {
		return nil, social.ErrInvalidReactionType
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	result, err := social.ApplyReaction(post, userID, t)
	if err != nil {
		return nil, err
	}
	switch result {
	case social.ReactionAdded:
		err = s.postRepo.PushReaction(ctx, postID, userID, t)
	case social.ReactionUpdated:
		err = s.postRepo.SetReactionType(ctx, postID, userID, t)
	case social.ReactionRemoved:
		err = s.postRepo.PullReaction(ctx, postID, userID)
	}
	if err != nil {
		return nil, err
	}
	// 重新读取，返回包含其他用户并发写入的表态列表
	if post, err = s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	metrics.RecordToggle("reaction", string(result))
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventReaction,
		ActorID:  userID.Hex(),
		TargetID: postID.Hex(),
		OwnerID:  post.AuthorID.Hex(),
		Result:   string(result),
		Detail:   string(t),
	})

	return &dto.ReactionResultDTO{
		Result:         string(result),
		Reactions:      toReactionDTOs(post.Reactions),
		ReactionCounts: reactionCounts(post.Reactions),
	}, nil
}

// RemoveReaction 没有表态时不写库，Result 为空
func (s *postActionServiceImpl) RemoveReaction(ctx context.Context, userID, postID primitive.ObjectID) (*dto.ReactionResultDTO, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	res := &dto.ReactionResultDTO{}
	if social.RemoveReaction(post, userID) {
		if err = s.postRepo.PullReaction(ctx, postID, userID); err != nil {
			return nil, err
		}
		if post, err = s.getPost(ctx, postID); err != nil {
			return nil, err
		}
		res.Result = string(social.ReactionRemoved)
		metrics.RecordToggle("reaction", res.Result)
		publishEvent(ctx, s.publisher, &model.SocialEvent{
			Type:     model.EventReaction,
			ActorID:  userID.Hex(),
			TargetID: postID.Hex(),
			OwnerID:  post.AuthorID.Hex(),
			Result:   res.Result,
		})
	}

	res.Reactions = toReactionDTOs(post.Reactions)
	res.ReactionCounts = reactionCounts(post.Reactions)
	return res, nil
}

// ToggleFavorite 帖子上的 favorites 是准确数据，用户侧的收藏列表同步失败只记录日志
func (s *postActionServiceImpl) ToggleFavorite(ctx context.Context, userID, postID primitive.ObjectID) (*dto.FavoriteResultDTO, error) {
	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	favorited := social.ToggleFavorite(post, userID)
	if favorited {
		err = s.postRepo.AddFavorite(ctx, postID, userID)
	} else {
		err = s.postRepo.RemoveFavorite(ctx, postID, userID)
	}
	if err != nil {
		return nil, err
	}
	if post, err = s.getPost(ctx, postID); err != nil {
		return nil, err
	}

	if favorited {
		err = s.userRepo.AddFavoritePost(ctx, userID, postID)
	} else {
		err = s.userRepo.RemoveFavoritePost(ctx, userID, postID)
	}
	if err != nil {
		log.WarnContext(ctx, "sync user favorite list failed", "user_id", userID.Hex(), "post_id", postID.Hex(), "err", err)
	}

	result := string(social.ReactionRemoved)
	if favorited {
		result = string(social.ReactionAdded)
	}
	metrics.RecordToggle("favorite", result)
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventFavorite,
		ActorID:  userID.Hex(),
		TargetID: postID.Hex(),
		OwnerID:  post.AuthorID.Hex(),
		Result:   result,
	})

	return &dto.FavoriteResultDTO{
		Favorited:      favorited,
		FavoritesCount: len(post.Favorites),
		Favorites:      util.IDsToHex(post.Favorites),
	}, nil
}

func (s *postActionServiceImpl) getPost(ctx context.Context, postID primitive.ObjectID) (*model.Post, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}
