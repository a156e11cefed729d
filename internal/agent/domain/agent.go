package domain

import (
	"errors"
	"time"

	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

var (
	ErrInvalidOutcome  = errors.New("agent outcome must be done or error")
	ErrInvalidProgress = errors.New("progress counters must not be negative")
	ErrInvalidPort     = errors.New("open ports must be between 1 and 65535")
)

// DefaultErrorDetail is stored when the agent reports a failure without a reason.
const DefaultErrorDetail = "scan failed"

type ProgressReport struct {
	CompletedUnits int
	FoundUnits     int
}

func (p ProgressReport) Validate() error {
	if p.CompletedUnits < 0 || p.FoundUnits < 0 {
		return ErrInvalidProgress
	}
	return nil
}

// Outcome is the single terminal report the agent sends for a job.
type Outcome struct {
	Status      scanJobDomain.Status
	ErrorDetail string
	OpenPorts   []int
}

func (o Outcome) Validate() error {
	switch o.Status {
	case scanJobDomain.StatusDone:
		for _, p := range o.OpenPorts {
			if p < 1 || p > scanJobDomain.FullSweepUnits {
				return ErrInvalidPort
			}
		}
		return nil
	case scanJobDomain.StatusError:
		return nil
	}
	return ErrInvalidOutcome
}

// Health is the agent liveness verdict derived from its heartbeat file.
type Health struct {
	Healthy    bool
	AgeSeconds int64
	TTLSeconds int64
	LastSeen   *time.Time
	// Reason explains an unhealthy verdict that was not caused by age.
	Reason string
}
