package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
)

// MockPortRepo is a mock implementation of the stalenessPort.Repo interface
type MockPortRepo struct {
	mock.Mock
}

func (m *MockPortRepo) ApplyScanResult(ctx context.Context, result domain.ScanResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockPortRepo) ListDown(ctx context.Context) ([]domain.DownPort, error) {
	args := m.Called(ctx)
	ports, _ := args.Get(0).([]domain.DownPort)
	return ports, args.Error(1)
}

func (m *MockPortRepo) DeleteByIDs(ctx context.Context, ids []domain.PortID) (int, error) {
	args := m.Called(ctx, ids)
	return args.Int(0), args.Error(1)
}
