package model

import (
	"time"
)

// PostMetric 帖子互动数据每日快照
type PostMetric struct {
	ID             uint64    `gorm:"primaryKey"`
	PostID         string    `gorm:"type:char(24);not null;index:idx_post_date,unique"`
	MetricDate     time.Time `gorm:"type:date;not null;index:idx_post_date,unique;column:metric_date"`
	TotalLikes     int       `gorm:"not null;default:0"`
	TotalDislikes  int       `gorm:"not null;default:0"`
	TotalLoves     int       `gorm:"not null;default:0"`
	TotalFavorites int       `gorm:"not null;default:0"`
	TotalComments  int       `gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"createdAt"`
}

func (PostMetric) TableName() string {
	return "post_daily_metrics"
}
