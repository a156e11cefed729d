package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/domain"
)

// MockSchedulerService is a mock implementation of the schedulerPort.Service interface
type MockSchedulerService struct {
	mock.Mock
}

func (m *MockSchedulerService) ScanNow(ctx context.Context, targetID int64) (domain.ScheduleResult, error) {
	args := m.Called(ctx, targetID)
	return args.Get(0).(domain.ScheduleResult), args.Error(1)
}

func (m *MockSchedulerService) RunPeriodicSweep(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MockSchedulerService) SweepDecision(ctx context.Context, now time.Time) (domain.SweepDecision, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(domain.SweepDecision), args.Error(1)
}

func (m *MockSchedulerService) LastScanAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	at, _ := args.Get(0).(*time.Time)
	return at, args.Error(1)
}
