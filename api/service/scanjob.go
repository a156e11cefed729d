package service

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	scanJobPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler"
	schedulerPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scheduler/port"
)

var (
	ErrInvalidScanJobID = scanjob.ErrInvalidScanJobID
	ErrInvalidTargetID  = scheduler.ErrInvalidTargetID
	ErrTargetNotFound   = scheduler.ErrTargetNotFound
	ErrScanJobOnCreate  = scheduler.ErrScanJobOnCreate
)

// ScanJobService provides API operations for scan jobs
type ScanJobService struct {
	service   scanJobPort.Service
	scheduler schedulerPort.Service
}

// NewScanJobService creates a new ScanJobService
func NewScanJobService(srv scanJobPort.Service, schedulerSrv schedulerPort.Service) *ScanJobService {
	return &ScanJobService{
		service:   srv,
		scheduler: schedulerSrv,
	}
}

// CreateJob queues a scan of one target, or returns the target's live job.
func (s *ScanJobService) CreateJob(ctx context.Context, req *dto.CreateScanJobRequest) (*dto.CreateScanJobResponse, error) {
	result, err := s.scheduler.ScanNow(ctx, req.TargetID)
	if err != nil {
		return nil, err
	}

	return &dto.CreateScanJobResponse{
		JobID:          result.JobID,
		AlreadyRunning: result.AlreadyRunning,
	}, nil
}

func (s *ScanJobService) CancelJob(ctx context.Context, id int64) (*dto.MessageResponse, error) {
	if err := s.service.Cancel(ctx, id); err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "canceled"}, nil
}

// GetJob returns either a *dto.ScanJob or a *dto.MissingScanJob.
func (s *ScanJobService) GetJob(ctx context.Context, id int64) (interface{}, error) {
	job, err := s.service.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	return snapshotPayload(job), nil
}

func (s *ScanJobService) ListActive(ctx context.Context) (*dto.ScanJobList, error) {
	jobs, err := s.service.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	contents := make([]*dto.ScanJob, 0, len(jobs))
	for _, job := range jobs {
		contents = append(contents, scanJobToDTO(job))
	}

	return &dto.ScanJobList{
		Contents: contents,
		Count:    len(contents),
	}, nil
}

// Subscribe streams wire events for one job until the subscription ends.
func (s *ScanJobService) Subscribe(ctx context.Context, id int64, emit func(dto.StreamEvent) error) error {
	return s.service.Subscribe(ctx, id, func(ev scanJobDomain.Event) error {
		return emit(eventToDTO(ev))
	})
}

func (s *ScanJobService) RunSweep(ctx context.Context) (*dto.SweepResponse, error) {
	queued, err := s.scheduler.RunPeriodicSweep(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.SweepResponse{Queued: queued}, nil
}
