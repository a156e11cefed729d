package scanjob

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"
	domain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

// Subscribe emits the job's current state, then re-reads it every interval.
// Unchanged or stale reads become heartbeats, so the emitted snapshots never
// move backwards. The loop ends after a terminal or missing snapshot, after a
// read that still fails once retries are exhausted, when emit fails, or when
// ctx is done.
func (s *service) Subscribe(ctx context.Context, id domain.JobID, emit func(domain.Event) error) error {
	if id <= 0 {
		return ErrInvalidScanJobID
	}

	fields := map[string]interface{}{
		"subscription_id": uuid.NewString(),
		"job_id":          id,
	}
	logger.InfoContextWithFields(ctx, "Scan Job Service: subscription opened", fields)
	defer logger.InfoContextWithFields(ctx, "Scan Job Service: subscription closed", fields)

	sub := &subscription{service: s, jobID: id, emit: emit}

	if done, err := sub.step(ctx); done || err != nil {
		return err
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if done, err := sub.step(ctx); done || err != nil {
				return err
			}
		}
	}
}

type subscription struct {
	service *service
	jobID   domain.JobID
	emit    func(domain.Event) error
	last    *domain.ScanJob
}

// step performs one read and at most one emit. It reports whether the
// subscription is finished.
func (sub *subscription) step(ctx context.Context) (bool, error) {
	job, err := sub.service.read(ctx, sub.jobID)
	if err != nil {
		if ctx.Err() != nil {
			return true, nil
		}
		logger.WarnContext(ctx, "Scan Job Service: giving up reading job %d for subscription: %v", sub.jobID, err)
		return true, sub.emit(domain.Event{
			Job:         domain.ScanJob{ID: sub.jobID, Status: domain.StatusError},
			StreamError: err.Error(),
		})
	}

	snapshot := domain.MissingJob(sub.jobID)
	if job != nil {
		snapshot = *job
	}

	if sub.last != nil && (snapshot.SameState(*sub.last) || snapshot.RegressesFrom(*sub.last)) {
		return false, sub.emit(domain.Event{Job: *sub.last, Heartbeat: true})
	}

	sub.last = &snapshot
	event := domain.Event{Job: snapshot}
	if err := sub.emit(event); err != nil {
		return true, err
	}
	return event.Final(), nil
}

// read loads a job with bounded exponential backoff. Concurrent reads of the
// same id share a single query.
func (s *service) read(ctx context.Context, id domain.JobID) (*domain.ScanJob, error) {
	backoff := retry.NewExponential(s.retryBase)
	backoff = retry.WithCappedDuration(s.interval, backoff)
	backoff = retry.WithMaxRetries(s.maxRetries, backoff)

	var job *domain.ScanJob
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		v, err, _ := s.reads.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
			return s.repo.GetByID(context.WithoutCancel(ctx), id)
		})
		if err != nil {
			return retry.RetryableError(err)
		}
		job, _ = v.(*domain.ScanJob)
		return nil
	})
	return job, err
}
