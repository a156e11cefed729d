package port

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
)

type Repo interface {
	// Get returns the settings row, creating it with defaults on first use.
	Get(ctx context.Context) (*domain.Settings, error)
}

type Service interface {
	Get(ctx context.Context) (domain.Settings, error)
}
