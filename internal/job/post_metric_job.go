package job

import (
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/service"
	log "log/slog"
)

type PostMetricsJob struct {
	postMetricSvc service.PostMetricService
}

func NewPostMetricsJob(postMetricSvc service.PostMetricService) *PostMetricsJob {
	return &PostMetricsJob{
		postMetricSvc: postMetricSvc,
	}
}

func (s *PostMetricsJob) Run() {
	ctx := jobContext("post-metric")
	count := drainDirtySet(ctx, redisDirtySets{}, consts.PostDirtyKey, s.postMetricSvc.SyncPostMetric)
	log.InfoContext(ctx, "sync post metrics success", "post_count", count)
}
