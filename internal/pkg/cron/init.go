package cron

import log "log/slog"

// InitCron 注册并启动定时任务
func InitCron(mgr *Manager) error {
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	log.Info("价格巡检任务已注册", "interval", mgr.checkInterval.String())
	mgr.Start()
	return nil
}
