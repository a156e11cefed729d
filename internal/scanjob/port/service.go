package port

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

type Service interface {
	// Snapshot returns the job, or a missing snapshot when it does not exist.
	Snapshot(ctx context.Context, id domain.JobID) (domain.ScanJob, error)
	ListActive(ctx context.Context) ([]domain.ScanJob, error)
	// Subscribe pushes job state to emit until the job is terminal or gone,
	// ctx is done, or emit fails.
	Subscribe(ctx context.Context, id domain.JobID, emit func(domain.Event) error) error
	Cancel(ctx context.Context, id domain.JobID) error
}
