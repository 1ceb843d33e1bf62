package repository

import (
	"Inkwell/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostMetricRepo interface {
	SaveOrUpdateMetric(ctx context.Context, metric *model.PostMetric) error
	GetPostMetricsSince(ctx context.Context, postID string, since time.Time) ([]*model.PostMetric, error)
	GetLatestMetricBefore(ctx context.Context, postID string, date time.Time) (*model.PostMetric, error)
	DeletePostMetrics(ctx context.Context, postID string) error
}

type postMetricRepoImpl struct {
	db *gorm.DB
}

func NewPostMetricRepository(db *gorm.DB) PostMetricRepo {
	return &postMetricRepoImpl{db: db}
}

// SaveOrUpdateMetric 采用 Upsert 逻辑。如果 post_id + metric_date 已存在，则更新各项数值
func (r *postMetricRepoImpl) SaveOrUpdateMetric(ctx context.Context, metric *model.PostMetric) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_likes",
			"total_dislikes",
			"total_loves",
			"total_favorites",
			"total_comments",
		}),
	}).Create(metric).Error
}

func (r *postMetricRepoImpl) GetPostMetricsSince(ctx context.Context, postID string, since time.Time) ([]*model.PostMetric, error) {
	metrics := make([]*model.PostMetric, 0)
	result := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Where("metric_date >= ?", since).
		Order("metric_date ASC").
		Find(&metrics)
	if result.Error != nil {
		return nil, result.Error
	}
	return metrics, nil
}

// GetLatestMetricBefore 获取指定日期前最近的一条指标记录
func (r *postMetricRepoImpl) GetLatestMetricBefore(ctx context.Context, postID string, date time.Time) (*model.PostMetric, error) {
	var metric model.PostMetric
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND metric_date < ?", postID, date).
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

// DeletePostMetrics 帖子删除后清理快照
func (r *postMetricRepoImpl) DeletePostMetrics(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).Where("post_id = ?", postID).Delete(&model.PostMetric{}).Error
}
