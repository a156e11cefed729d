package app

import (
	"context"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent"
	agentPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler"
	schedulerPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness"
	stalenessPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage"
	appCtx "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/mysql"
	"gorm.io/gorm"
)

type app struct {
	db               *gorm.DB
	cfg              config.Config
	scanJobService   scanJobPort.Service
	schedulerService schedulerPort.Service
	stalenessService stalenessPort.Service
	settingsService  settingsPort.Service
	agentService     agentPort.Service
	heartbeat        agentPort.HeartbeatSource
	schedulerRunner  *scheduler.SchedulerRunner
}

func (a *app) DB() *gorm.DB {
	return a.db
}

func (a *app) Config() config.Config {
	return a.cfg
}

func (a *app) scanJobServiceWithDB(db *gorm.DB) scanJobPort.Service {
	stream := a.cfg.Stream
	return scanjob.NewScanJobService(
		storage.NewScanJobRepo(db),
		scanjob.WithStreamInterval(time.Duration(stream.IntervalMillis)*time.Millisecond),
		scanjob.WithReadRetry(uint64(stream.MaxRetries), time.Duration(stream.RetryBaseMillis)*time.Millisecond),
	)
}

// ScanJobService returns the shared instance outside a transaction, so that
// stream subscribers of the same job share their reads.
func (a *app) ScanJobService(ctx context.Context) scanJobPort.Service {
	db := appCtx.GetDB(ctx)
	if db == nil {
		return a.scanJobService
	}
	return a.scanJobServiceWithDB(db)
}

func (a *app) settingsServiceWithDB(db *gorm.DB) settingsPort.Service {
	return settings.NewSettingsService(storage.NewSettingsRepo(db))
}

func (a *app) SettingsService(ctx context.Context) settingsPort.Service {
	db := appCtx.GetDB(ctx)
	if db == nil {
		return a.settingsService
	}
	return a.settingsServiceWithDB(db)
}

func (a *app) schedulerServiceWithDB(db *gorm.DB) schedulerPort.Service {
	return scheduler.NewSchedulerService(
		storage.NewScanJobRepo(db),
		storage.NewTargetRepo(db),
		a.settingsServiceWithDB(db),
	)
}

func (a *app) SchedulerService(ctx context.Context) schedulerPort.Service {
	db := appCtx.GetDB(ctx)
	if db == nil {
		return a.schedulerService
	}
	return a.schedulerServiceWithDB(db)
}

func (a *app) stalenessServiceWithDB(db *gorm.DB) stalenessPort.Service {
	return staleness.NewStalenessService(storage.NewPortRepo(db))
}

func (a *app) StalenessService(ctx context.Context) stalenessPort.Service {
	db := appCtx.GetDB(ctx)
	if db == nil {
		return a.stalenessService
	}
	return a.stalenessServiceWithDB(db)
}

// agentServiceWithDB builds the agent service on one connection, so a done
// report and its port reconciliation commit together.
func (a *app) agentServiceWithDB(db *gorm.DB) agentPort.Service {
	return agent.NewAgentService(
		storage.NewScanJobRepo(db),
		a.settingsServiceWithDB(db),
		a.stalenessServiceWithDB(db),
		a.heartbeat,
		time.Duration(a.cfg.Agent.HeartbeatTTLSeconds)*time.Second,
	)
}

func (a *app) AgentService(ctx context.Context) agentPort.Service {
	db := appCtx.GetDB(ctx)
	if db == nil {
		return a.agentService
	}
	return a.agentServiceWithDB(db)
}

// StartScheduler begins the scheduler runner
func (a *app) StartScheduler() {
	if a.schedulerRunner != nil {
		a.schedulerRunner.Start()
	}
}

// StopScheduler halts the scheduler runner
func (a *app) StopScheduler() {
	if a.schedulerRunner != nil {
		a.schedulerRunner.Stop()
	}
}

func (a *app) setDB() error {
	db, err := mysql.NewMysqlConnection(mysql.DBConnOptions{
		Host:     a.cfg.DB.Host,
		Port:     a.cfg.DB.Port,
		Username: a.cfg.DB.Username,
		Password: a.cfg.DB.Password,
		Database: a.cfg.DB.Database,
	})
	if err != nil {
		return err
	}
	if err := mysql.GormMigrations(db); err != nil {
		return err
	}
	a.db = db
	return nil
}

func NewApp(cfg config.Config) (AppContainer, error) {
	a := &app{cfg: cfg}
	if err := a.setDB(); err != nil {
		return nil, err
	}
	return newAppWithDB(a), nil
}

func newAppWithDB(a *app) *app {
	a.heartbeat = agent.NewFileHeartbeat(a.cfg.Agent.HeartbeatPath)
	a.settingsService = a.settingsServiceWithDB(a.db)
	a.scanJobService = a.scanJobServiceWithDB(a.db)
	a.schedulerService = a.schedulerServiceWithDB(a.db)
	a.stalenessService = a.stalenessServiceWithDB(a.db)
	a.agentService = a.agentServiceWithDB(a.db)

	if a.cfg.Scheduler.IsEnabled() {
		checkInterval := time.Duration(a.cfg.Scheduler.CheckIntervalSeconds) * time.Second
		a.schedulerRunner = scheduler.NewSchedulerRunner(a.schedulerService, checkInterval)
	} else {
		logger.Info("App: in-process scheduler disabled, sweeps must be triggered externally")
	}

	return a
}

func NewMustApp(cfg config.Config) AppContainer {
	a, err := NewApp(cfg)
	if err != nil {
		panic(err)
	}
	return a
}
