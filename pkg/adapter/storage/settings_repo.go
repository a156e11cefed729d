package storage

import (
	"context"
	"errors"

	settingsDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
	settingsPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
	typesMapper "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types/mapper"
	appCtx "gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/context"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepo struct {
	db *gorm.DB
}

func NewSettingsRepo(db *gorm.DB) settingsPort.Repo {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) Get(ctx context.Context) (*settingsDomain.Settings, error) {
	db := appCtx.GetDB(ctx)
	if db == nil {
		db = r.db
	}
	db = db.WithContext(ctx)

	var row types.Settings
	err := db.Where("id = ?", types.SettingsRowID).Take(&row).Error
	if err == nil {
		return typesMapper.SettingsStorage2Domain(row), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	row = typesMapper.SettingsDomain2Storage(settingsDomain.Defaults())
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
		return nil, err
	}
	return typesMapper.SettingsStorage2Domain(row), nil
}
