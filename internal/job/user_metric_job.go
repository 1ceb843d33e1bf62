package job

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/service"
	log "log/slog"
)

type UserMetricsJob struct {
	userMetricSvc service.UserMetricsService
}

func NewUserMetricsJob(userMetricSvc service.UserMetricsService) *UserMetricsJob {
	return &UserMetricsJob{
		userMetricSvc: userMetricSvc,
	}
}

func (s *UserMetricsJob) Run() {
	ctx := jobContext("user-metric")
	count := drainDirtySet(ctx, redisDirtySets{}, consts.UserFollowDirtyKey, s.userMetricSvc.SyncUserDailyMetric)
	log.InfoContext(ctx, "sync user metrics success", "user_count", count)
}
