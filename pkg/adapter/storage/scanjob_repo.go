package storage

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
	typesMapper "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types/mapper"
	appCtx "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	mysqlErrDuplicateEntry = 1062
	createIfIdleAttempts   = 3
)

type scanJobRepo struct {
	db *gorm.DB
}

func NewScanJobRepo(db *gorm.DB) scanJobPort.Repo {
	return &scanJobRepo{db: db}
}

func (r *scanJobRepo) conn(ctx context.Context) *gorm.DB {
	db := appCtx.GetDB(ctx)
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx)
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry
}

func (r *scanJobRepo) CreateIfIdle(ctx context.Context, targetID int64, totalUnits int) (*scanJobDomain.ScanJob, bool, error) {
	db := r.conn(ctx)

	var err error
	for attempt := 1; attempt <= createIfIdleAttempts; attempt++ {
		row := typesMapper.NewQueuedScanJob(targetID, totalUnits)
		err = db.Create(&row).Error
		if err == nil {
			return typesMapper.ScanJobStorage2Domain(row), false, nil
		}
		if !isDuplicateEntry(err) {
			return nil, false, err
		}

		// A locking read sees the latest committed live job, not the
		// snapshot of an enclosing transaction.
		var existing types.ScanJob
		lookupErr := db.Clauses(clause.Locking{Strength: "SHARE"}).
			Where("live_target_id = ?", targetID).
			Take(&existing).Error
		if lookupErr == nil {
			return typesMapper.ScanJobStorage2Domain(existing), true, nil
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return nil, false, lookupErr
		}

		logger.InfoContext(ctx, "Scan Job Repository: live job for target %d finished during create, retrying insert (attempt %d)", targetID, attempt)
	}

	return nil, false, err
}

func (r *scanJobRepo) CreateMany(ctx context.Context, targetIDs []int64, totalUnits int) (int, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}

	rows := make([]types.ScanJob, 0, len(targetIDs))
	for _, id := range targetIDs {
		rows = append(rows, typesMapper.NewQueuedScanJob(id, totalUnits))
	}

	// Targets that gained a live job since they were listed hit the unique
	// key and are skipped; RowsAffected counts only the inserted rows.
	result := r.conn(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}

func (r *scanJobRepo) GetByID(ctx context.Context, id scanJobDomain.JobID) (*scanJobDomain.ScanJob, error) {
	var row types.ScanJob
	err := r.conn(ctx).Where("id = ?", id).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return typesMapper.ScanJobStorage2Domain(row), nil
}

func (r *scanJobRepo) ListActive(ctx context.Context) ([]scanJobDomain.ScanJob, error) {
	var rows []types.ScanJob
	err := r.conn(ctx).
		Where("status IN ?", typesMapper.LiveStatusStrings()).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return typesMapper.ScanJobsStorage2Domain(rows), nil
}

func (r *scanJobRepo) ListLiveTargets(ctx context.Context) ([]int64, error) {
	var targetIDs []int64
	err := r.conn(ctx).
		Model(&types.ScanJob{}).
		Where("live_target_id IS NOT NULL").
		Pluck("live_target_id", &targetIDs).Error
	return targetIDs, err
}

func (r *scanJobRepo) Claim(ctx context.Context, maxScanning int) (*scanJobDomain.ScanJob, error) {
	var claimed *scanJobDomain.ScanJob

	err := r.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var scanning int64
		if err := tx.Model(&types.ScanJob{}).
			Where("status = ?", string(scanJobDomain.StatusScanning)).
			Count(&scanning).Error; err != nil {
			return err
		}
		if int(scanning) >= maxScanning {
			return nil
		}

		var next types.ScanJob
		err := tx.Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
			Where("status = ?", string(scanJobDomain.StatusQueued)).
			Order("created_at ASC").
			Order("id ASC").
			Take(&next).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		now := time.Now()
		result := tx.Model(&types.ScanJob{}).
			Where("id = ? AND status = ?", next.ID, string(scanJobDomain.StatusQueued)).
			Updates(map[string]interface{}{
				"status":     string(scanJobDomain.StatusScanning),
				"started_at": now,
				"updated_at": now,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		next.Status = string(scanJobDomain.StatusScanning)
		next.StartedAt = &now
		next.UpdatedAt = now
		claimed = typesMapper.ScanJobStorage2Domain(next)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return claimed, nil
}

func (r *scanJobRepo) UpdateProgress(ctx context.Context, id scanJobDomain.JobID, completedUnits, foundUnits int) error {
	now := time.Now()
	result := r.conn(ctx).
		Model(&types.ScanJob{}).
		Where("id = ? AND status IN ?", id, typesMapper.LiveStatusStrings()).
		Updates(map[string]interface{}{
			"status":          string(scanJobDomain.StatusScanning),
			"started_at":      gorm.Expr("COALESCE(started_at, ?)", now),
			"completed_units": gorm.Expr("LEAST(total_units, GREATEST(completed_units, ?))", completedUnits),
			"found_units":     gorm.Expr("GREATEST(found_units, ?)", foundUnits),
			"updated_at":      now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		return nil
	}

	// MySQL reports zero affected rows for updates that change nothing, so
	// look at the job before calling it finalized.
	job, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if job == nil {
		return scanJobDomain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return scanJobDomain.ErrJobFinalized
	}
	return nil
}

func (r *scanJobRepo) Finish(ctx context.Context, id scanJobDomain.JobID, t scanJobDomain.Termination) (bool, error) {
	updates := map[string]interface{}{
		"status":         string(t.Status),
		"finished_at":    t.FinishedAt,
		"updated_at":     t.FinishedAt,
		"live_target_id": nil,
	}

	switch t.Status {
	case scanJobDomain.StatusError:
		if t.ErrorDetail != nil {
			updates["error_detail"] = *t.ErrorDetail
		}
	case scanJobDomain.StatusDone:
		updates["completed_units"] = gorm.Expr("total_units")
		if t.FoundUnits != nil {
			updates["found_units"] = gorm.Expr("GREATEST(found_units, ?)", *t.FoundUnits)
		}
	}

	result := r.conn(ctx).
		Model(&types.ScanJob{}).
		Where("id = ? AND finished_at IS NULL AND status IN ?", id, typesMapper.LiveStatusStrings()).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (r *scanJobRepo) LastFinishedAt(ctx context.Context) (*time.Time, error) {
	var finished []time.Time
	err := r.conn(ctx).
		Model(&types.ScanJob{}).
		Where("status = ? AND finished_at IS NOT NULL", string(scanJobDomain.StatusDone)).
		Order("finished_at DESC").
		Limit(1).
		Pluck("finished_at", &finished).Error
	if err != nil {
		return nil, err
	}
	if len(finished) == 0 {
		return nil, nil
	}
	return &finished[0], nil
}
