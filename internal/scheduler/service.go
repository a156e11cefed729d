package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

var (
	ErrInvalidTargetID = errors.New("invalid target ID")
	ErrTargetNotFound  = errors.New("target not found")
	ErrScanJobOnCreate = errors.New("error on creating scan job")
)

type schedulerService struct {
	jobs     scanJobPort.Repo
	targets  port.TargetRepo
	settings settingsPort.Service
}

func NewSchedulerService(jobs scanJobPort.Repo, targets port.TargetRepo, settings settingsPort.Service) port.Service {
	return &schedulerService{
		jobs:     jobs,
		targets:  targets,
		settings: settings,
	}
}

// ScanNow queues a full sweep of one target. Asking again while that job is
// live returns the same job id.
func (s *schedulerService) ScanNow(ctx context.Context, targetID int64) (domain.ScheduleResult, error) {
	if targetID <= 0 {
		return domain.ScheduleResult{}, ErrInvalidTargetID
	}

	exists, err := s.targets.Exists(ctx, targetID)
	if err != nil {
		return domain.ScheduleResult{}, err
	}
	if !exists {
		return domain.ScheduleResult{}, ErrTargetNotFound
	}

	job, alreadyRunning, err := s.jobs.CreateIfIdle(ctx, targetID, scanJobDomain.FullSweepUnits)
	if err != nil {
		logger.ErrorContext(ctx, "Scheduler Service: failed to create scan job for target %d: %v", targetID, err)
		return domain.ScheduleResult{}, fmt.Errorf("%w: %w", ErrScanJobOnCreate, err)
	}

	if alreadyRunning {
		logger.InfoContext(ctx, "Scheduler Service: target %d already has live job %d", targetID, job.ID)
	} else {
		logger.InfoContext(ctx, "Scheduler Service: created scan job %d for target %d", job.ID, targetID)
	}

	return domain.ScheduleResult{JobID: job.ID, AlreadyRunning: alreadyRunning}, nil
}

// RunPeriodicSweep queues a job for every scannable target that has no live
// job and returns how many were queued.
func (s *schedulerService) RunPeriodicSweep(ctx context.Context) (int, error) {
	targets, err := s.targets.ListScannable(ctx)
	if err != nil {
		return 0, err
	}

	live, err := s.jobs.ListLiveTargets(ctx)
	if err != nil {
		return 0, err
	}

	busy := make(map[int64]struct{}, len(live))
	for _, id := range live {
		busy[id] = struct{}{}
	}

	idle := make([]int64, 0, len(targets))
	for _, id := range targets {
		if _, ok := busy[id]; !ok {
			idle = append(idle, id)
		}
	}

	queued, err := s.jobs.CreateMany(ctx, idle, scanJobDomain.FullSweepUnits)
	if err != nil {
		logger.ErrorContext(ctx, "Scheduler Service: periodic sweep failed: %v", err)
		return 0, fmt.Errorf("%w: %w", ErrScanJobOnCreate, err)
	}

	logger.InfoContextWithFields(ctx, "Scheduler Service: periodic sweep finished", map[string]interface{}{
		"scannable": len(targets),
		"live":      len(live),
		"queued":    queued,
	})
	return queued, nil
}

func (s *schedulerService) SweepDecision(ctx context.Context, now time.Time) (domain.SweepDecision, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return domain.SweepDecision{}, err
	}

	lastScanAt, err := s.jobs.LastFinishedAt(ctx)
	if err != nil {
		return domain.SweepDecision{}, err
	}

	decision := domain.SweepDecision{LastScanAt: lastScanAt}
	switch {
	case !settings.ScanEnabled:
		decision.Reason = domain.ReasonDisabled
	case lastScanAt != nil && now.Sub(*lastScanAt) < settings.ScanInterval():
		decision.Reason = domain.ReasonRecentScan
	default:
		decision.Due = true
		decision.Reason = domain.ReasonDue
	}
	return decision, nil
}

func (s *schedulerService) LastScanAt(ctx context.Context) (*time.Time, error) {
	return s.jobs.LastFinishedAt(ctx)
}
