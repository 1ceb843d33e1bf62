package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	"time"
)

type UserMetricsService interface {
	// SyncUserDailyMetric 将当前粉丝数、关注数写入当天快照
	SyncUserDailyMetric(ctx context.Context, userID string) error
	GetUserMetricsBy7Days(ctx context.Context, userID string) (*dto.UserTrendDTO, error)
	GetUserMetricsBy30Days(ctx context.Context, userID string) (*dto.UserTrendDTO, error)
}

type userMetricsServiceImpl struct {
	userMetricsRepo repository.UserMetricsRepo
	userRepo        repository.UserRepo
}

func NewUserMetricsService(userMetricsRepo repository.UserMetricsRepo, userRepo repository.UserRepo) UserMetricsService {
	return &userMetricsServiceImpl{
		userMetricsRepo: userMetricsRepo,
		userRepo:        userRepo,
	}
}

func (s *userMetricsServiceImpl) SyncUserDailyMetric(ctx context.Context, userID string) error {
	id, ok := util.ParseObjectID(userID)
	if !ok {
		return ErrParamInvalid
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return nil
	}

	err = s.userMetricsRepo.SaveOrUpdateMetric(ctx, &model.UserMetrics{
		UserID:         userID,
		MetricDate:     util.GetMidnight(time.Now()),
		TotalFollowers: len(user.Followers),
		TotalFollowing: len(user.Following),
	})
	if err != nil {
		return err
	}

	_ = redis.DeleteKey(ctx, consts.UserMetrics7DaysKey+userID, consts.UserMetrics30DaysKey+userID)
	return nil
}

func (s *userMetricsServiceImpl) GetUserMetricsBy7Days(ctx context.Context, userID string) (*dto.UserTrendDTO, error) {
	return s.getUserTrend(ctx, userID, consts.UserMetrics7DaysKey+userID, 7)
}

func (s *userMetricsServiceImpl) GetUserMetricsBy30Days(ctx context.Context, userID string) (*dto.UserTrendDTO, error) {
	return s.getUserTrend(ctx, userID, consts.UserMetrics30DaysKey+userID, 30)
}

// getUserTrend 缺失的日期沿用前一天的数值，窗口起点之前的最近一条作为基线
func (s *userMetricsServiceImpl) getUserTrend(ctx context.Context, userID, key string, days int) (*dto.UserTrendDTO, error) {
	var cached dto.UserTrendDTO
	if hit, _ := redis.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	dates := trendDates(days)
	start := dates[0]
	rows, err := s.userMetricsRepo.GetUserMetricsSince(ctx, userID, start)
	if err != nil {
		return nil, err
	}

	var last *model.UserMetrics
	if len(rows) == 0 || !rows[0].MetricDate.Equal(start) {
		last, err = s.userMetricsRepo.GetLatestMetricBefore(ctx, userID, start)
		if err != nil {
			return nil, err
		}
	}

	byDate := make(map[string]*model.UserMetrics, len(rows))
	for _, m := range rows {
		byDate[m.MetricDate.Format(time.DateOnly)] = m
	}

	res := &dto.UserTrendDTO{
		UserID:    userID,
		Days:      days,
		Followers: make([]*dto.UserMetricDTO, 0, days),
		Following: make([]*dto.UserMetricDTO, 0, days),
	}
	for _, d := range dates {
		dateStr := d.Format(time.DateOnly)
		if m, ok := byDate[dateStr]; ok {
			last = m
		}
		followers, following := 0, 0
		if last != nil {
			followers, following = last.TotalFollowers, last.TotalFollowing
		}
		res.Followers = append(res.Followers, &dto.UserMetricDTO{Date: dateStr, Value: followers})
		res.Following = append(res.Following, &dto.UserMetricDTO{Date: dateStr, Value: following})
	}

	cacheUntilMidnight(ctx, key, res)
	return res, nil
}
