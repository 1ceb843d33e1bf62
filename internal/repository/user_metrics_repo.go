package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserMetricsRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.UserMetrics) error
	GetUserMetricsSince(ctx context.Context, userID string, since time.Time) ([]*model.UserMetrics, error)
	GetLatestMetricBefore(ctx context.Context, userID string, date time.Time) (*model.UserMetrics, error)
}

type userMetricsRepoImpl struct {
	db *gorm.DB
}

func NewUserMetricsRepository(db *gorm.DB) UserMetricsRepo {
	return &userMetricsRepoImpl{db: db}
}

// SaveOrUpdateMetric user_id + metric_date 已存在时覆盖计数
func (s *userMetricsRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.UserMetrics) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"total_followers", "total_following"}),
	}).Create(metric).Error
}

func (s *userMetricsRepoImpl) GetUserMetricsSince(ctx context.Context, userID string, since time.Time) ([]*model.UserMetrics, error) {
	metrics := make([]*model.UserMetrics, 0)
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND metric_date >= ?", userID, since).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// GetLatestMetricBefore 找指定日期之前最近的一条记录，用作趋势起点
func (s *userMetricsRepoImpl) GetLatestMetricBefore(ctx context.Context, userID string, date time.Time) (*model.UserMetrics, error) {
	var metric model.UserMetrics
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND metric_date < ?", userID, date).
		Order("metric_date DESC").
		First(&metric).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &metric, nil
}
