package types

import (
	"time"
)

// ScanJob rows carry LiveTargetID only while the job is queued or scanning.
// The unique index on it is what keeps a target down to one live job; MySQL
// allows any number of NULLs in a unique index.
type ScanJob struct {
	ID             int64      `gorm:"column:id;primaryKey;autoIncrement"`
	TargetID       int64      `gorm:"column:target_id;not null;index"`
	LiveTargetID   *int64     `gorm:"column:live_target_id;uniqueIndex:uniq_scan_jobs_live_target"`
	Status         string     `gorm:"column:status;type:enum('queued','scanning','done','error','canceled');not null;default:queued;index"`
	TotalUnits     int        `gorm:"column:total_units;not null"`
	CompletedUnits int        `gorm:"column:completed_units;not null;default:0"`
	FoundUnits     int        `gorm:"column:found_units;not null;default:0"`
	ErrorDetail    *string    `gorm:"column:error_detail;type:text"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:datetime;not null"`
	StartedAt      *time.Time `gorm:"column:started_at;type:datetime"`
	FinishedAt     *time.Time `gorm:"column:finished_at;type:datetime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:datetime"`
}

func (ScanJob) TableName() string {
	return "scan_jobs"
}
