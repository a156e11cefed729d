package app

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/config"
	agentPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/port"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	schedulerPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	stalenessPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
	"gorm.io/gorm"
)

type AppContainer interface {
	ScanJobService(ctx context.Context) scanJobPort.Service
	SchedulerService(ctx context.Context) schedulerPort.Service
	StalenessService(ctx context.Context) stalenessPort.Service
	SettingsService(ctx context.Context) settingsPort.Service
	AgentService(ctx context.Context) agentPort.Service
	StartScheduler()
	StopScheduler()
	Config() config.Config
	DB() *gorm.DB
}
