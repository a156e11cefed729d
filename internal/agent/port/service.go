package port

import (
	"context"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/domain"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

type Service interface {
	Claim(ctx context.Context) (*scanJobDomain.ScanJob, error)
	ReportProgress(ctx context.Context, id scanJobDomain.JobID, report domain.ProgressReport) error
	Finish(ctx context.Context, id scanJobDomain.JobID, outcome domain.Outcome) error
	Health(ctx context.Context) domain.Health
}

// HeartbeatSource returns the time of the agent's last liveness beat.
type HeartbeatSource interface {
	LastBeat(ctx context.Context) (time.Time, error)
}
