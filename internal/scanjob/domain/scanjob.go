package domain

import (
	"errors"
	"time"
)

var (
	ErrJobNotFound  = errors.New("scan job not found")
	ErrJobFinalized = errors.New("scan job already finished")
)

type JobID = int64

// FullSweepUnits is the work size of a scan covering every TCP port.
const FullSweepUnits = 65535

type Status string

const (
	StatusQueued   Status = "queued"
	StatusScanning Status = "scanning"
	StatusDone     Status = "done"
	StatusError    Status = "error"
	StatusCanceled Status = "canceled"

	// StatusMissing is reported for job ids that are not in storage. It is
	// never persisted.
	StatusMissing Status = "missing"
)

// LiveStatuses are the statuses that still accept writes.
var LiveStatuses = []Status{StatusQueued, StatusScanning}

func (s Status) IsLive() bool {
	return s == StatusQueued || s == StatusScanning
}

func (s Status) IsTerminal() bool {
	switch s {
	case StatusDone, StatusError, StatusCanceled, StatusMissing:
		return true
	}
	return false
}

// Rank orders statuses along the lifecycle queued -> scanning -> terminal.
func (s Status) Rank() int {
	switch s {
	case StatusQueued:
		return 0
	case StatusScanning:
		return 1
	default:
		return 2
	}
}

// ScanJob is one scan attempt against a target.
type ScanJob struct {
	ID             JobID
	TargetID       int64
	Status         Status
	TotalUnits     int
	CompletedUnits int
	FoundUnits     int
	ErrorDetail    *string
	CreatedAt      time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
	UpdatedAt      time.Time
}

// MissingJob is the snapshot reported for an id with no stored job.
func MissingJob(id JobID) ScanJob {
	return ScanJob{ID: id, Status: StatusMissing}
}

// SameState reports whether two snapshots would look identical to an observer.
func (j ScanJob) SameState(o ScanJob) bool {
	return j.ID == o.ID &&
		j.Status == o.Status &&
		j.CompletedUnits == o.CompletedUnits &&
		j.FoundUnits == o.FoundUnits &&
		equalString(j.ErrorDetail, o.ErrorDetail) &&
		equalTime(j.FinishedAt, o.FinishedAt)
}

// RegressesFrom reports whether j is older than prev: lower status rank or
// fewer completed units. A missing job never regresses; disappearance is final.
func (j ScanJob) RegressesFrom(prev ScanJob) bool {
	if j.Status == StatusMissing {
		return false
	}
	if j.Status.Rank() < prev.Status.Rank() {
		return true
	}
	return j.CompletedUnits < prev.CompletedUnits
}

// Termination describes the single terminal write a job receives.
type Termination struct {
	Status      Status
	ErrorDetail *string
	// FoundUnits, when set on a done termination, raises the final open-port count.
	FoundUnits *int
	FinishedAt time.Time
}

// Event is one message on a job subscription.
type Event struct {
	Job ScanJob
	// Heartbeat marks a tick where nothing changed.
	Heartbeat bool
	// StreamError is set when the subscription itself failed to read the job.
	// It is unrelated to the job's own error status.
	StreamError string
}

func (e Event) Final() bool {
	return e.StreamError != "" || (!e.Heartbeat && e.Job.Status.IsTerminal())
}

func equalString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTime(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
