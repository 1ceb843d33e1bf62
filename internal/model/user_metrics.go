package model

import "time"

// UserMetrics 用户粉丝数每日快照
type UserMetrics struct {
	ID             uint64    `gorm:"primaryKey"`
	UserID         string    `gorm:"type:char(24);not null;uniqueIndex:idx_user_date,priority:1"`
	MetricDate     time.Time `gorm:"type:date;not null;uniqueIndex:idx_user_date,priority:2"`
	TotalFollowers int       `gorm:"type:int;not null;default:0"`
	TotalFollowing int       `gorm:"type:int;not null;default:0"`
	CreatedAt      time.Time
}

func (UserMetrics) TableName() string {
	return "user_metrics"
}
