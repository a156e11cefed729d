package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockTargetRepo is a mock implementation of the schedulerPort.TargetRepo interface
type MockTargetRepo struct {
	mock.Mock
}

func (m *MockTargetRepo) Exists(ctx context.Context, targetID int64) (bool, error) {
	args := m.Called(ctx, targetID)
	return args.Bool(0), args.Error(1)
}

func (m *MockTargetRepo) ListScannable(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}
