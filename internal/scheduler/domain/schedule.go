package domain

import (
	"time"

	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

// ScheduleResult answers an on-demand scan request. AlreadyRunning is set
// when JobID refers to a job that was live before the request.
type ScheduleResult struct {
	JobID          scanJobDomain.JobID
	AlreadyRunning bool
}

// SweepDecision explains whether a periodic sweep should run now.
type SweepDecision struct {
	Due        bool
	Reason     string
	LastScanAt *time.Time
}

const (
	ReasonDisabled   = "scanning disabled"
	ReasonRecentScan = "last scan is within the configured interval"
	ReasonDue        = "due"
)
