package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/settings/domain"
)

// MockSettingsService is a mock implementation of the settingsPort.Service interface
type MockSettingsService struct {
	mock.Mock
}

func (m *MockSettingsService) Get(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}
