package domain

import (
	"time"
)

type PortID = int64

// Port is a known port on a server together with its scan bookkeeping.
type Port struct {
	ID                  PortID
	ServerID            int64
	Number              int
	Note                *string
	LastConfirmedOpenAt *time.Time
	LastScanAttemptAt   *time.Time
}

// IsDown reports whether the most recent scan of the port's server did not
// find it open.
func (p Port) IsDown() bool {
	if p.LastScanAttemptAt == nil {
		return false
	}
	return p.LastConfirmedOpenAt == nil || p.LastConfirmedOpenAt.Before(*p.LastScanAttemptAt)
}

// DownPort is a down port with the names an operator needs to review it.
type DownPort struct {
	Port
	ServerName string
	ServerIP   string
	// HostName is set when the server is a VM.
	HostName *string
}

// ScanResult is what a finished scan reported for one target.
type ScanResult struct {
	TargetID   int64
	OpenPorts  []int
	FinishedAt time.Time
}
