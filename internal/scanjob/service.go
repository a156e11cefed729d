package scanjob

import (
	"context"
	"errors"
	"time"

	domain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
	"golang.org/x/sync/singleflight"
)

var (
	ErrInvalidScanJobID = errors.New("invalid scan job ID")
)

const (
	DefaultStreamInterval = time.Second
	DefaultMaxReadRetries = 3
	DefaultRetryBase      = 100 * time.Millisecond
)

// service implements scanJobPort.Service
type service struct {
	repo       scanJobPort.Repo
	interval   time.Duration
	maxRetries uint64
	retryBase  time.Duration
	now        func() time.Time

	// reads collapses concurrent subscription reads of the same job into one
	// storage query per tick.
	reads singleflight.Group
}

type Option func(*service)

// WithStreamInterval sets how often subscriptions re-read a job.
func WithStreamInterval(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.interval = d
		}
	}
}

// WithReadRetry bounds the retries of a failed subscription read.
func WithReadRetry(maxRetries uint64, base time.Duration) Option {
	return func(s *service) {
		s.maxRetries = maxRetries
		if base > 0 {
			s.retryBase = base
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}

// NewScanJobService creates a new scan job service
func NewScanJobService(repo scanJobPort.Repo, opts ...Option) scanJobPort.Service {
	s := &service{
		repo:       repo,
		interval:   DefaultStreamInterval,
		maxRetries: DefaultMaxReadRetries,
		retryBase:  DefaultRetryBase,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) Snapshot(ctx context.Context, id domain.JobID) (domain.ScanJob, error) {
	if id <= 0 {
		return domain.ScanJob{}, ErrInvalidScanJobID
	}

	job, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.ScanJob{}, err
	}
	if job == nil {
		return domain.MissingJob(id), nil
	}
	return *job, nil
}

func (s *service) ListActive(ctx context.Context) ([]domain.ScanJob, error) {
	return s.repo.ListActive(ctx)
}

// Cancel marks a live job canceled. Jobs that are missing or already
// terminal are left alone and no error is returned.
func (s *service) Cancel(ctx context.Context, id domain.JobID) error {
	if id <= 0 {
		return ErrInvalidScanJobID
	}

	applied, err := s.repo.Finish(ctx, id, domain.Termination{
		Status:     domain.StatusCanceled,
		FinishedAt: s.now(),
	})
	if err != nil {
		logger.ErrorContext(ctx, "Scan Job Service: failed to cancel job %d: %v", id, err)
		return err
	}

	if !applied {
		logger.InfoContext(ctx, "Scan Job Service: cancel of job %d ignored, job is missing or already finished", id)
		return nil
	}

	logger.InfoContext(ctx, "Scan Job Service: job %d canceled", id)
	return nil
}
