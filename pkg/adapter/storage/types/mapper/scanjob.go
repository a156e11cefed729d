package mapper

import (
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
)

func ScanJobStorage2Domain(s types.ScanJob) *scanJobDomain.ScanJob {
	return &scanJobDomain.ScanJob{
		ID:             s.ID,
		TargetID:       s.TargetID,
		Status:         scanJobDomain.Status(s.Status),
		TotalUnits:     s.TotalUnits,
		CompletedUnits: s.CompletedUnits,
		FoundUnits:     s.FoundUnits,
		ErrorDetail:    s.ErrorDetail,
		CreatedAt:      s.CreatedAt,
		StartedAt:      s.StartedAt,
		FinishedAt:     s.FinishedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func ScanJobsStorage2Domain(rows []types.ScanJob) []scanJobDomain.ScanJob {
	result := make([]scanJobDomain.ScanJob, 0, len(rows))
	for _, r := range rows {
		result = append(result, *ScanJobStorage2Domain(r))
	}
	return result
}

// NewQueuedScanJob builds the row for a fresh job, holding the live slot of its target.
func NewQueuedScanJob(targetID int64, totalUnits int) types.ScanJob {
	live := targetID
	return types.ScanJob{
		TargetID:     targetID,
		LiveTargetID: &live,
		Status:       string(scanJobDomain.StatusQueued),
		TotalUnits:   totalUnits,
	}
}

func statusStrings(statuses []scanJobDomain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

// LiveStatusStrings returns the live statuses as stored in the status column.
func LiveStatusStrings() []string {
	return statusStrings(scanJobDomain.LiveStatuses)
}
