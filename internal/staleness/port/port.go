package port

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
)

type Repo interface {
	// ApplyScanResult stamps every port of the target as attempted and the
	// reported open ports as confirmed, creating rows for new open ports.
	ApplyScanResult(ctx context.Context, result domain.ScanResult) error
	ListDown(ctx context.Context) ([]domain.DownPort, error)
	DeleteByIDs(ctx context.Context, ids []domain.PortID) (int, error)
}

type Service interface {
	ApplyScanResult(ctx context.Context, result domain.ScanResult) error
	DownPorts(ctx context.Context) ([]domain.DownPort, error)
	RemovePorts(ctx context.Context, ids []domain.PortID) (int, error)
}
