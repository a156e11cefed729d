package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

// MockScanJobService is a mock implementation of the scanJobPort.Service interface.
// Subscribe replays the events given to Return before returning the error.
type MockScanJobService struct {
	mock.Mock
}

func (m *MockScanJobService) Snapshot(ctx context.Context, id domain.JobID) (domain.ScanJob, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.ScanJob), args.Error(1)
}

func (m *MockScanJobService) ListActive(ctx context.Context) ([]domain.ScanJob, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]domain.ScanJob)
	return jobs, args.Error(1)
}

func (m *MockScanJobService) Subscribe(ctx context.Context, id domain.JobID, emit func(domain.Event) error) error {
	args := m.Called(ctx, id)
	events, _ := args.Get(0).([]domain.Event)
	for _, ev := range events {
		if err := emit(ev); err != nil {
			return err
		}
	}
	return args.Error(1)
}

func (m *MockScanJobService) Cancel(ctx context.Context, id domain.JobID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
