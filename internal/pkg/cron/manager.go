package cron

import (
	"Inkwell/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const (
	// 每 10 分钟刷新一次当天快照，跨天后自动写入新日期
	metricsSpec = "0 */10 * * * *"
)

type Manager struct {
	engine         *cron.Cron
	userMetricsJob *job.UserMetricsJob
	postMetricsJob *job.PostMetricsJob
}

func NewCronManager(userMetricsJob *job.UserMetricsJob, postMetricsJob *job.PostMetricsJob) *Manager {
	return &Manager{
		engine:         cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		userMetricsJob: userMetricsJob,
		postMetricsJob: postMetricsJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(metricsSpec, s.userMetricsJob); err != nil {
		return err
	}
	if _, err := s.engine.AddJob(metricsSpec, s.postMetricsJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}
