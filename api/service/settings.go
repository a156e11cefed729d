package service

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	schedulerPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
)

type SettingsService struct {
	settings  settingsPort.Service
	scheduler schedulerPort.Service
}

func NewSettingsService(settings settingsPort.Service, schedulerSrv schedulerPort.Service) *SettingsService {
	return &SettingsService{
		settings:  settings,
		scheduler: schedulerSrv,
	}
}

// GetScanSettings returns the scan settings together with the time the last
// scan finished, which the dashboard uses to show the next sweep.
func (s *SettingsService) GetScanSettings(ctx context.Context) (*dto.ScanSettings, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	lastScanAt, err := s.scheduler.LastScanAt(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.ScanSettings{
		ScanEnabled:         settings.ScanEnabled,
		ScanIntervalMinutes: settings.ScanIntervalMinutes,
		ScanConcurrency:     settings.ScanConcurrency,
		LastScanAt:          optionalTime(lastScanAt),
	}, nil
}
