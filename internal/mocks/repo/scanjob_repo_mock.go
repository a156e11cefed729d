package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

// MockScanJobRepo is a mock implementation of the scanJobPort.Repo interface
type MockScanJobRepo struct {
	mock.Mock
}

func (m *MockScanJobRepo) CreateIfIdle(ctx context.Context, targetID int64, totalUnits int) (*domain.ScanJob, bool, error) {
	args := m.Called(ctx, targetID, totalUnits)
	job, _ := args.Get(0).(*domain.ScanJob)
	return job, args.Bool(1), args.Error(2)
}

func (m *MockScanJobRepo) CreateMany(ctx context.Context, targetIDs []int64, totalUnits int) (int, error) {
	args := m.Called(ctx, targetIDs, totalUnits)
	return args.Int(0), args.Error(1)
}

func (m *MockScanJobRepo) GetByID(ctx context.Context, id domain.JobID) (*domain.ScanJob, error) {
	args := m.Called(ctx, id)
	job, _ := args.Get(0).(*domain.ScanJob)
	return job, args.Error(1)
}

func (m *MockScanJobRepo) ListActive(ctx context.Context) ([]domain.ScanJob, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]domain.ScanJob)
	return jobs, args.Error(1)
}

func (m *MockScanJobRepo) ListLiveTargets(ctx context.Context) ([]int64, error) {
	args := m.Called(ctx)
	ids, _ := args.Get(0).([]int64)
	return ids, args.Error(1)
}

func (m *MockScanJobRepo) Claim(ctx context.Context, maxScanning int) (*domain.ScanJob, error) {
	args := m.Called(ctx, maxScanning)
	job, _ := args.Get(0).(*domain.ScanJob)
	return job, args.Error(1)
}

func (m *MockScanJobRepo) UpdateProgress(ctx context.Context, id domain.JobID, completedUnits, foundUnits int) error {
	args := m.Called(ctx, id, completedUnits, foundUnits)
	return args.Error(0)
}

func (m *MockScanJobRepo) Finish(ctx context.Context, id domain.JobID, t domain.Termination) (bool, error) {
	args := m.Called(ctx, id, t)
	return args.Bool(0), args.Error(1)
}

func (m *MockScanJobRepo) LastFinishedAt(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	at, _ := args.Get(0).(*time.Time)
	return at, args.Error(1)
}
