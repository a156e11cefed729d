package dto

// ScanJob is the JSON snapshot of one scan job. Timestamps are RFC3339.
type ScanJob struct {
	JobID          int64   `json:"jobId"`
	TargetID       int64   `json:"targetId"`
	Status         string  `json:"status"`
	TotalUnits     int     `json:"totalUnits"`
	CompletedUnits int     `json:"completedUnits"`
	FoundUnits     int     `json:"foundUnits"`
	ErrorDetail    *string `json:"errorDetail,omitempty"`
	CreatedAt      string  `json:"createdAt,omitempty"`
	StartedAt      string  `json:"startedAt,omitempty"`
	FinishedAt     string  `json:"finishedAt,omitempty"`
	UpdatedAt      string  `json:"updatedAt,omitempty"`
}

// MissingScanJob is returned for a job id that is not in storage.
type MissingScanJob struct {
	JobID  int64  `json:"jobId"`
	Status string `json:"status"`
}

// StreamFailure is the last message of a stream whose storage reads failed.
// StreamError is a transport problem; the job itself may still be running.
type StreamFailure struct {
	JobID       int64  `json:"jobId"`
	Status      string `json:"status"`
	StreamError string `json:"streamError"`
}

// StreamEvent is one item written to a job stream. Keepalive events carry no
// payload.
type StreamEvent struct {
	Keepalive bool
	Payload   interface{}
}

type CreateScanJobRequest struct {
	TargetID int64 `json:"targetId"`
}

type CreateScanJobResponse struct {
	JobID          int64 `json:"jobId"`
	AlreadyRunning bool  `json:"alreadyRunning"`
}

type ScanJobList struct {
	Contents []*ScanJob `json:"contents"`
	Count    int        `json:"count"`
}

type SweepResponse struct {
	Queued int `json:"queued"`
}
