package http

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/service"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/app"
)

// scan job service transient instance handler
func scanJobServiceGetter(appContainer app.AppContainer) ServiceGetter[*service.ScanJobService] {
	return func(ctx context.Context) *service.ScanJobService {
		return service.NewScanJobService(appContainer.ScanJobService(ctx), appContainer.SchedulerService(ctx))
	}
}

// port service transient instance handler
func portServiceGetter(appContainer app.AppContainer) ServiceGetter[*service.PortService] {
	return func(ctx context.Context) *service.PortService {
		return service.NewPortService(appContainer.StalenessService(ctx))
	}
}

func settingsServiceGetter(appContainer app.AppContainer) ServiceGetter[*service.SettingsService] {
	return func(ctx context.Context) *service.SettingsService {
		return service.NewSettingsService(appContainer.SettingsService(ctx), appContainer.SchedulerService(ctx))
	}
}

func agentServiceGetter(appContainer app.AppContainer) ServiceGetter[*service.AgentService] {
	return func(ctx context.Context) *service.AgentService {
		return service.NewAgentService(appContainer.AgentService(ctx))
	}
}
