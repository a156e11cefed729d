package service

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent"
	agentDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/domain"
	agentPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/agent/port"
	scanJobDomain "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
)

var (
	ErrInvalidJobID    = agent.ErrInvalidJobID
	ErrInvalidOutcome  = agentDomain.ErrInvalidOutcome
	ErrInvalidProgress = agentDomain.ErrInvalidProgress
	ErrInvalidPort     = agentDomain.ErrInvalidPort
	ErrJobNotFound     = scanJobDomain.ErrJobNotFound
	ErrJobFinalized    = scanJobDomain.ErrJobFinalized
)

// AgentService serves the scan agent's job API.
type AgentService struct {
	service agentPort.Service
}

func NewAgentService(srv agentPort.Service) *AgentService {
	return &AgentService{service: srv}
}

// Claim returns nil when no job is waiting or the concurrency limit is reached.
func (s *AgentService) Claim(ctx context.Context) (*dto.ClaimResponse, error) {
	job, err := s.service.Claim(ctx)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, nil
	}
	return &dto.ClaimResponse{Job: scanJobToDTO(*job)}, nil
}

func (s *AgentService) ReportProgress(ctx context.Context, id int64, req *dto.ProgressRequest) (*dto.MessageResponse, error) {
	err := s.service.ReportProgress(ctx, id, agentDomain.ProgressReport{
		CompletedUnits: req.CompletedUnits,
		FoundUnits:     req.FoundUnits,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: "ok"}, nil
}

func (s *AgentService) Finish(ctx context.Context, id int64, req *dto.FinishRequest) (*dto.MessageResponse, error) {
	err := s.service.Finish(ctx, id, agentDomain.Outcome{
		Status:      scanJobDomain.Status(req.Status),
		ErrorDetail: req.ErrorDetail,
		OpenPorts:   req.OpenPorts,
	})
	if err != nil {
		return nil, err
	}
	return &dto.MessageResponse{Message: req.Status}, nil
}

func (s *AgentService) Health(ctx context.Context) *dto.AgentHealth {
	health := s.service.Health(ctx)

	result := &dto.AgentHealth{
		Healthy:    health.Healthy,
		TTLSeconds: health.TTLSeconds,
		LastSeen:   optionalTime(health.LastSeen),
		Reason:     health.Reason,
	}
	if health.LastSeen != nil {
		age := health.AgeSeconds
		result.AgeSeconds = &age
	}
	return result
}
