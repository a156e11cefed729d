package mapper

import (
	stalenessDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
)

func DownPortRow2Domain(r types.DownPortRow) stalenessDomain.DownPort {
	return stalenessDomain.DownPort{
		Port: stalenessDomain.Port{
			ID:                  r.ID,
			ServerID:            r.ServerID,
			Number:              r.Port,
			Note:                r.Note,
			LastConfirmedOpenAt: r.LastConfirmedOpenAt,
			LastScanAttemptAt:   r.LastScanAttemptAt,
		},
		ServerName: r.ServerName,
		ServerIP:   r.ServerIP,
		HostName:   r.HostName,
	}
}

// ConfirmedOpenPorts builds the rows upserted for ports a scan found open.
func ConfirmedOpenPorts(result stalenessDomain.ScanResult) []types.Port {
	rows := make([]types.Port, 0, len(result.OpenPorts))
	for _, number := range result.OpenPorts {
		at := result.FinishedAt
		rows = append(rows, types.Port{
			ServerID:            result.TargetID,
			Port:                number,
			LastConfirmedOpenAt: &at,
			LastScanAttemptAt:   &at,
		})
	}
	return rows
}
