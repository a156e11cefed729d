package port

import (
	"context"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/domain"
)

type Service interface {
	ScanNow(ctx context.Context, targetID int64) (domain.ScheduleResult, error)
	RunPeriodicSweep(ctx context.Context) (int, error)
	// SweepDecision applies the settings gate and the interval since the
	// last finished scan at the given instant.
	SweepDecision(ctx context.Context, now time.Time) (domain.SweepDecision, error)
	LastScanAt(ctx context.Context) (*time.Time, error)
}
