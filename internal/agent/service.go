package agent

import (
	"context"
	"errors"
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/domain"
	agentPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/port"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	stalenessDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
	stalenessPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

var ErrInvalidJobID = errors.New("invalid scan job ID")

type service struct {
	jobs      scanJobPort.Repo
	settings  settingsPort.Service
	staleness stalenessPort.Service
	heartbeat agentPort.HeartbeatSource
	healthTTL time.Duration
	now       func() time.Time
}

// NewAgentService serves the agent side of the job lifecycle: claiming queued
// jobs, reporting progress and writing the terminal status.
func NewAgentService(
	jobs scanJobPort.Repo,
	settings settingsPort.Service,
	staleness stalenessPort.Service,
	heartbeat agentPort.HeartbeatSource,
	healthTTL time.Duration,
) agentPort.Service {
	return &service{
		jobs:      jobs,
		settings:  settings,
		staleness: staleness,
		heartbeat: heartbeat,
		healthTTL: healthTTL,
		now:       time.Now,
	}
}

// Claim hands the oldest queued job to the agent, keeping the number of
// scanning jobs within the configured scan concurrency.
func (s *service) Claim(ctx context.Context) (*scanJobDomain.ScanJob, error) {
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	job, err := s.jobs.Claim(ctx, settings.ScanConcurrency)
	if err != nil {
		logger.ErrorContext(ctx, "Agent Service: failed to claim job: %v", err)
		return nil, err
	}
	if job != nil {
		logger.InfoContext(ctx, "Agent Service: job %d for target %d claimed", job.ID, job.TargetID)
	}
	return job, nil
}

func (s *service) ReportProgress(ctx context.Context, id scanJobDomain.JobID, report domain.ProgressReport) error {
	if id <= 0 {
		return ErrInvalidJobID
	}
	if err := report.Validate(); err != nil {
		return err
	}

	return s.jobs.UpdateProgress(ctx, id, report.CompletedUnits, report.FoundUnits)
}

// Finish writes the agent's terminal report. When the job already reached a
// terminal status, for example because it was canceled, the report is
// rejected with scanJobDomain.ErrJobFinalized and nothing changes.
func (s *service) Finish(ctx context.Context, id scanJobDomain.JobID, outcome domain.Outcome) error {
	if id <= 0 {
		return ErrInvalidJobID
	}
	if err := outcome.Validate(); err != nil {
		return err
	}

	job, err := s.jobs.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return scanJobDomain.ErrJobNotFound
	}

	finishedAt := s.now()
	termination := scanJobDomain.Termination{
		Status:     outcome.Status,
		FinishedAt: finishedAt,
	}
	openPorts := uniquePorts(outcome.OpenPorts)
	switch outcome.Status {
	case scanJobDomain.StatusDone:
		found := len(openPorts)
		termination.FoundUnits = &found
	case scanJobDomain.StatusError:
		detail := outcome.ErrorDetail
		if detail == "" {
			detail = domain.DefaultErrorDetail
		}
		termination.ErrorDetail = &detail
	}

	applied, err := s.jobs.Finish(ctx, id, termination)
	if err != nil {
		return err
	}
	if !applied {
		logger.WarnContext(ctx, "Agent Service: %s report for job %d rejected, job already finished", outcome.Status, id)
		return scanJobDomain.ErrJobFinalized
	}

	logger.InfoContextWithFields(ctx, "Agent Service: job finished", map[string]interface{}{
		"job_id":     id,
		"target_id":  job.TargetID,
		"status":     string(outcome.Status),
		"open_ports": len(openPorts),
	})

	if outcome.Status != scanJobDomain.StatusDone {
		return nil
	}

	return s.staleness.ApplyScanResult(ctx, stalenessDomain.ScanResult{
		TargetID:   job.TargetID,
		OpenPorts:  openPorts,
		FinishedAt: finishedAt,
	})
}

func (s *service) Health(ctx context.Context) domain.Health {
	health := domain.Health{TTLSeconds: int64(s.healthTTL / time.Second)}

	lastSeen, err := s.heartbeat.LastBeat(ctx)
	if err != nil {
		health.Reason = err.Error()
		return health
	}

	age := s.now().Sub(lastSeen)
	health.LastSeen = &lastSeen
	health.AgeSeconds = int64(age / time.Second)
	health.Healthy = health.AgeSeconds <= health.TTLSeconds
	return health
}

func uniquePorts(ports []int) []int {
	seen := make(map[int]struct{}, len(ports))
	out := make([]int, 0, len(ports))
	for _, p := range ports {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return out
}
