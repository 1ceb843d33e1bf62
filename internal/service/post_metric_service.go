package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"Inkwell/internal/social"
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostMetricService interface {
	// SyncPostMetric 同步帖子每日指标快照
	SyncPostMetric(ctx context.Context, postID string) error
	// GetPostMetricsBy7Days 获取最近7天全维度趋势数据，仅作者与管理员可见
	GetPostMetricsBy7Days(ctx context.Context, actor Actor, postID string) (*dto.PostTrendDTO, error)
	GetPostMetricsBy30Days(ctx context.Context, actor Actor, postID string) (*dto.PostTrendDTO, error)
}

type postMetricServiceImpl struct {
	postMetricRepo repository.PostMetricRepo
	postRepo       repository.PostRepo
	commentRepo    repository.CommentRepo
}

func NewPostMetricService(postMetricRepo repository.PostMetricRepo, postRepo repository.PostRepo, commentRepo repository.CommentRepo) PostMetricService {
	return &postMetricServiceImpl{
		postMetricRepo: postMetricRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
	}
}

// SyncPostMetric 将帖子当前的表态、收藏、评论数刷入当天快照，帖子已删除时跳过
func (s *postMetricServiceImpl) SyncPostMetric(ctx context.Context, postID string) error {
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return ErrParamInvalid
	}
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return nil
	}

	comments, err := s.commentRepo.CountByPosts(ctx, []primitive.ObjectID{id})
	if err != nil {
		return err
	}
	counts := social.NewReactionSet(post.Reactions).Counts()

	err = s.postMetricRepo.SaveOrUpdateMetric(ctx, &model.PostMetric{
		PostID:         postID,
		MetricDate:     util.GetMidnight(time.Now()),
		TotalLikes:     counts[model.ReactionLike],
		TotalDislikes:  counts[model.ReactionDislike],
		TotalLoves:     counts[model.ReactionLove],
		TotalFavorites: len(post.Favorites),
		TotalComments:  int(comments[id]),
	})
	if err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.PostMetrics7DaysKey+postID, consts.PostMetrics30DaysKey+postID)
	return nil
}

func (s *postMetricServiceImpl) GetPostMetricsBy7Days(ctx context.Context, actor Actor, postID string) (*dto.PostTrendDTO, error) {
	return s.getPostTrend(ctx, actor, postID, consts.PostMetrics7DaysKey+postID, 7)
}

func (s *postMetricServiceImpl) GetPostMetricsBy30Days(ctx context.Context, actor Actor, postID string) (*dto.PostTrendDTO, error) {
	return s.getPostTrend(ctx, actor, postID, consts.PostMetrics30DaysKey+postID, 30)
}

func (s *postMetricServiceImpl) getPostTrend(ctx context.Context, actor Actor, postID, key string, days int) (*dto.PostTrendDTO, error) {
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return nil, ErrParamInvalid
	}
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if !actor.CanModify(post.AuthorID) {
		return nil, ErrForbidden
	}

	var cached dto.PostTrendDTO
	if hit, _ := redis.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	dates := trendDates(days)
	start := dates[0]
	rows, err := s.postMetricRepo.GetPostMetricsSince(ctx, postID, start)
	if err != nil {
		return nil, err
	}

	var last *model.PostMetric
	if len(rows) == 0 || !rows[0].MetricDate.Equal(start) {
		last, err = s.postMetricRepo.GetLatestMetricBefore(ctx, postID, start)
		if err != nil {
			return nil, err
		}
	}

	byDate := make(map[string]*model.PostMetric, len(rows))
	for _, m := range rows {
		byDate[m.MetricDate.Format(time.DateOnly)] = m
	}

	res := &dto.PostTrendDTO{
		PostID:    postID,
		Days:      days,
		Likes:     make([]*dto.PostMetricDTO, 0, days),
		Dislikes:  make([]*dto.PostMetricDTO, 0, days),
		Loves:     make([]*dto.PostMetricDTO, 0, days),
		Favorites: make([]*dto.PostMetricDTO, 0, days),
		Comments:  make([]*dto.PostMetricDTO, 0, days),
	}
	for _, d := range dates {
		dateStr := d.Format(time.DateOnly)
		if m, ok := byDate[dateStr]; ok {
			last = m
		}
		cur := &model.PostMetric{}
		if last != nil {
			cur = last
		}
		res.Likes = append(res.Likes, &dto.PostMetricDTO{Date: dateStr, Value: cur.TotalLikes})
		res.Dislikes = append(res.Dislikes, &dto.PostMetricDTO{Date: dateStr, Value: cur.TotalDislikes})
		res.Loves = append(res.Loves, &dto.PostMetricDTO{Date: dateStr, Value: cur.TotalLoves})
		res.Favorites = append(res.Favorites, &dto.PostMetricDTO{Date: dateStr, Value: cur.TotalFavorites})
		res.Comments = append(res.Comments, &dto.PostMetricDTO{Date: dateStr, Value: cur.TotalComments})
	}

	cacheUntilMidnight(ctx, key, res)
	return res, nil
}
