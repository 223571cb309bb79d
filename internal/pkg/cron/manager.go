package cron

import (
	"PriceTracker/internal/job"
	"fmt"
	log "log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine        *cron.Cron
	priceCheckJob *job.PriceCheckJob
	checkInterval time.Duration
}

func NewCronManager(priceCheckJob *job.PriceCheckJob, checkInterval time.Duration) *Manager {
	return &Manager{
		engine:        cron.New(cron.WithSeconds()),
		priceCheckJob: priceCheckJob,
		checkInterval: checkInterval,
	}
}

// RegisterJobs 注册定时任务。
// SkipIfStillRunning 保证上一轮巡检没结束时不会并发开启下一轮。
func (s *Manager) RegisterJobs() error {
	spec := fmt.Sprintf("@every %s", s.checkInterval)
	wrapped := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(s.priceCheckJob)
	if _, err := s.engine.AddJob(spec, wrapped); err != nil {
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
	s.engine.Stop()
}
