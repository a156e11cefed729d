package storage

import (
	"context"

	stalenessDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
	stalenessPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
	typesMapper "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types/mapper"
	appCtx "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type portRepo struct {
	db *gorm.DB
}

func NewPortRepo(db *gorm.DB) stalenessPort.Repo {
	return &portRepo{db: db}
}

func (r *portRepo) conn(ctx context.Context) *gorm.DB {
	db := appCtx.GetDB(ctx)
	if db == nil {
		db = r.db
	}
	return db.WithContext(ctx)
}

func (r *portRepo) ApplyScanResult(ctx context.Context, result stalenessDomain.ScanResult) error {
	db := r.conn(ctx)

	if err := db.Model(&types.Port{}).
		Where("server_id = ?", result.TargetID).
		Update("last_scan_attempt_at", result.FinishedAt).Error; err != nil {
		return err
	}

	if len(result.OpenPorts) == 0 {
		return nil
	}

	rows := typesMapper.ConfirmedOpenPorts(result)
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "server_id"}, {Name: "port"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"last_confirmed_open_at": result.FinishedAt,
			"last_scan_attempt_at":   result.FinishedAt,
		}),
	}).Create(&rows).Error
}

func (r *portRepo) ListDown(ctx context.Context) ([]stalenessDomain.DownPort, error) {
	var rows []types.DownPortRow
	err := r.conn(ctx).
		Table("ports AS p").
		Select("p.id, p.server_id, p.port, p.note, p.last_confirmed_open_at, p.last_scan_attempt_at, " +
			"s.name AS server_name, s.ip AS server_ip, h.name AS host_name").
		Joins("JOIN servers AS s ON s.id = p.server_id").
		Joins("LEFT JOIN servers AS h ON h.id = s.host_id").
		Where("p.last_scan_attempt_at IS NOT NULL").
		Where("p.last_confirmed_open_at IS NULL OR p.last_confirmed_open_at < p.last_scan_attempt_at").
		Order("s.name ASC").
		Order("p.port ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]stalenessDomain.DownPort, 0, len(rows))
	for _, row := range rows {
		result = append(result, typesMapper.DownPortRow2Domain(row))
	}
	return result, nil
}

func (r *portRepo) DeleteByIDs(ctx context.Context, ids []stalenessDomain.PortID) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	result := r.conn(ctx).Where("id IN ?", ids).Delete(&types.Port{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
