package types

import (
	"time"
)

const SettingsRowID = 1

// Settings is a singleton row.
type Settings struct {
	ID                  int64     `gorm:"column:id;primaryKey"`
	ScanEnabled         bool      `gorm:"column:scan_enabled;not null"`
	ScanIntervalMinutes int       `gorm:"column:scan_interval_minutes;not null"`
	ScanConcurrency     int       `gorm:"column:scan_concurrency;not null"`
	UpdatedAt           time.Time `gorm:"column:updated_at;type:datetime"`
}

func (Settings) TableName() string {
	return "settings"
}
