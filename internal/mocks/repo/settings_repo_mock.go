package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
)

// MockSettingsRepo is a mock implementation of the settingsPort.Repo interface
type MockSettingsRepo struct {
	mock.Mock
}

func (m *MockSettingsRepo) Get(ctx context.Context) (*domain.Settings, error) {
	args := m.Called(ctx)
	settings, _ := args.Get(0).(*domain.Settings)
	return settings, args.Error(1)
}
