package service

import (
	"time"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	stalenessDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
)

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func optionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(t)
	return &s
}

func scanJobToDTO(job scanJobDomain.ScanJob) *dto.ScanJob {
	return &dto.ScanJob{
		JobID:          job.ID,
		TargetID:       job.TargetID,
		Status:         string(job.Status),
		TotalUnits:     job.TotalUnits,
		CompletedUnits: job.CompletedUnits,
		FoundUnits:     job.FoundUnits,
		ErrorDetail:    job.ErrorDetail,
		CreatedAt:      formatTime(&job.CreatedAt),
		StartedAt:      formatTime(job.StartedAt),
		FinishedAt:     formatTime(job.FinishedAt),
		UpdatedAt:      formatTime(&job.UpdatedAt),
	}
}

// snapshotPayload picks the wire shape for a job: the full snapshot, or the
// short missing form.
func snapshotPayload(job scanJobDomain.ScanJob) interface{} {
	if job.Status == scanJobDomain.StatusMissing {
		return &dto.MissingScanJob{JobID: job.ID, Status: string(job.Status)}
	}
	return scanJobToDTO(job)
}

func eventToDTO(ev scanJobDomain.Event) dto.StreamEvent {
	switch {
	case ev.StreamError != "":
		return dto.StreamEvent{Payload: &dto.StreamFailure{
			JobID:       ev.Job.ID,
			Status:      string(scanJobDomain.StatusError),
			StreamError: ev.StreamError,
		}}
	case ev.Heartbeat:
		return dto.StreamEvent{Keepalive: true}
	default:
		return dto.StreamEvent{Payload: snapshotPayload(ev.Job)}
	}
}

func downPortToDTO(p stalenessDomain.DownPort) *dto.DownPort {
	return &dto.DownPort{
		ID:                  p.ID,
		ServerID:            p.ServerID,
		Port:                p.Number,
		Note:                p.Note,
		ServerName:          p.ServerName,
		ServerIP:            p.ServerIP,
		HostName:            p.HostName,
		LastConfirmedOpenAt: formatTime(p.LastConfirmedOpenAt),
		LastScanAttemptAt:   formatTime(p.LastScanAttemptAt),
	}
}
