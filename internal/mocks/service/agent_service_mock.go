package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/domain"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

// MockAgentService is a mock implementation of the agentPort.Service interface
type MockAgentService struct {
	mock.Mock
}

func (m *MockAgentService) Claim(ctx context.Context) (*scanJobDomain.ScanJob, error) {
	args := m.Called(ctx)
	job, _ := args.Get(0).(*scanJobDomain.ScanJob)
	return job, args.Error(1)
}

func (m *MockAgentService) ReportProgress(ctx context.Context, id scanJobDomain.JobID, report domain.ProgressReport) error {
	args := m.Called(ctx, id, report)
	return args.Error(0)
}

func (m *MockAgentService) Finish(ctx context.Context, id scanJobDomain.JobID, outcome domain.Outcome) error {
	args := m.Called(ctx, id, outcome)
	return args.Error(0)
}

func (m *MockAgentService) Health(ctx context.Context) domain.Health {
	args := m.Called(ctx)
	return args.Get(0).(domain.Health)
}

// MockHeartbeatSource is a mock implementation of the agentPort.HeartbeatSource interface
type MockHeartbeatSource struct {
	mock.Mock
}

func (m *MockHeartbeatSource) LastBeat(ctx context.Context) (time.Time, error) {
	args := m.Called(ctx)
	return args.Get(0).(time.Time), args.Error(1)
}
