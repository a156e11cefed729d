package service

import (
	"context"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/api/dto"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness"
	stalenessPort "gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
)

var (
	ErrEmptyPortIDs  = staleness.ErrEmptyPortIDs
	ErrInvalidPortID = staleness.ErrInvalidPortID
)

// PortService exposes the down-port review screen.
type PortService struct {
	service stalenessPort.Service
}

func NewPortService(srv stalenessPort.Service) *PortService {
	return &PortService{service: srv}
}

func (s *PortService) DownPorts(ctx context.Context) (*dto.DownPortList, error) {
	ports, err := s.service.DownPorts(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.DownPort, 0, len(ports))
	for _, p := range ports {
		result = append(result, downPortToDTO(p))
	}

	return &dto.DownPortList{
		Ports: result,
		Count: len(result),
	}, nil
}

func (s *PortService) DeletePorts(ctx context.Context, req *dto.DeletePortsRequest) (*dto.DeletePortsResponse, error) {
	deleted, err := s.service.RemovePorts(ctx, req.IDs)
	if err != nil {
		return nil, err
	}
	return &dto.DeletePortsResponse{Deleted: deleted}, nil
}
