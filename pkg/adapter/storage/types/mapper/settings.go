package mapper

import (
	settingsDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
)

func SettingsStorage2Domain(s types.Settings) *settingsDomain.Settings {
	return &settingsDomain.Settings{
		ScanEnabled:         s.ScanEnabled,
		ScanIntervalMinutes: s.ScanIntervalMinutes,
		ScanConcurrency:     s.ScanConcurrency,
		UpdatedAt:           s.UpdatedAt,
	}
}

func SettingsDomain2Storage(s settingsDomain.Settings) types.Settings {
	return types.Settings{
		ID:                  types.SettingsRowID,
		ScanEnabled:         s.ScanEnabled,
		ScanIntervalMinutes: s.ScanIntervalMinutes,
		ScanConcurrency:     s.ScanConcurrency,
		UpdatedAt:           s.UpdatedAt,
	}
}
