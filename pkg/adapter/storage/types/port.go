package types

import (
	"time"
)

type Port struct {
	ID                  int64      `gorm:"column:id;primaryKey;autoIncrement"`
	ServerID            int64      `gorm:"column:server_id;not null;uniqueIndex:uniq_ports_server_port"`
	Port                int        `gorm:"column:port;not null;uniqueIndex:uniq_ports_server_port"`
	Note                *string    `gorm:"column:note;size:255"`
	LastConfirmedOpenAt *time.Time `gorm:"column:last_confirmed_open_at;type:datetime"`
	LastScanAttemptAt   *time.Time `gorm:"column:last_scan_attempt_at;type:datetime"`
}

func (Port) TableName() string {
	return "ports"
}

// DownPortRow is the projection of the down-port report query.
type DownPortRow struct {
	ID                  int64
	ServerID            int64
	Port                int
	Note                *string
	LastConfirmedOpenAt *time.Time
	LastScanAttemptAt   *time.Time
	ServerName          string
	ServerIP            string
	HostName            *string
}
