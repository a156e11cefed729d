package settings

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

type service struct {
	repo port.Repo
}

func NewSettingsService(repo port.Repo) port.Service {
	return &service{repo: repo}
}

// Get returns the scan settings. Values stored out of range are clamped
// rather than rejected, so a bad edit never stops the scheduler.
func (s *service) Get(ctx context.Context) (domain.Settings, error) {
	stored, err := s.repo.Get(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	if stored == nil {
		return domain.Defaults(), nil
	}

	if err := stored.Validate(); err != nil {
		logger.WarnContext(ctx, "Settings Service: stored scan settings are invalid (%v), clamping", err)
		return stored.Clamped(), nil
	}
	return *stored, nil
}
