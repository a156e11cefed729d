package port

import (
	"context"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

// Repo is the durable job store. Every write that touches a live job is a
// conditional update on its status, so terminal jobs are never modified.
type Repo interface {
	// CreateIfIdle inserts a queued job for targetID unless the target already
	// has a live job, in which case that job is returned with alreadyRunning set.
	CreateIfIdle(ctx context.Context, targetID int64, totalUnits int) (job *domain.ScanJob, alreadyRunning bool, err error)
	// CreateMany queues a job for every target without a live job and returns
	// how many rows were inserted.
	CreateMany(ctx context.Context, targetIDs []int64, totalUnits int) (int, error)
	GetByID(ctx context.Context, id domain.JobID) (*domain.ScanJob, error)
	ListActive(ctx context.Context) ([]domain.ScanJob, error)
	ListLiveTargets(ctx context.Context) ([]int64, error)
	// Claim moves the oldest queued job to scanning, unless maxScanning jobs
	// are already scanning. It returns nil when nothing was claimed.
	Claim(ctx context.Context, maxScanning int) (*domain.ScanJob, error)
	UpdateProgress(ctx context.Context, id domain.JobID, completedUnits, foundUnits int) error
	// Finish applies t if the job is still live and reports whether it did.
	Finish(ctx context.Context, id domain.JobID, t domain.Termination) (bool, error)
	LastFinishedAt(ctx context.Context) (*time.Time, error)
}
