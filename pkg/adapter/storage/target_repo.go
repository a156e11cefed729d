package storage

import (
	"context"

	schedulerPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
	appCtx "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gorm.io/gorm"
)

type targetRepo struct {
	db *gorm.DB
}

// NewTargetRepo exposes the servers table as scan targets.
func NewTargetRepo(db *gorm.DB) schedulerPort.TargetRepo {
	return &targetRepo{db: db}
}

func (r *targetRepo) conn(ctx context.Context) *gorm.DB {
	db := appCtx.GetDB(ctx)
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx)
}

func (r *targetRepo) Exists(ctx context.Context, targetID int64) (bool, error) {
	var count int64
	err := r.conn(ctx).Model(&types.Server{}).Where("id = ?", targetID).Count(&count).Error
	return count > 0, err
}

func (r *targetRepo) ListScannable(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.conn(ctx).
		Model(&types.Server{}).
		Where("exclude_from_scan = ?", false).
		Order("id ASC").
		Pluck("id", &ids).Error
	return ids, err
}
