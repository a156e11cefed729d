package staleness

import (
	"context"
	"errors"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/port"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/logger"
)

var (
	ErrEmptyPortIDs  = errors.New("port id list must not be empty")
	ErrInvalidPortID = errors.New("port ids must be positive integers")
	ErrInvalidTarget = errors.New("invalid target ID")
)

type service struct {
	repo port.Repo
}

func NewStalenessService(repo port.Repo) port.Service {
	return &service{repo: repo}
}

func (s *service) ApplyScanResult(ctx context.Context, result domain.ScanResult) error {
	if result.TargetID <= 0 {
		return ErrInvalidTarget
	}

	if err := s.repo.ApplyScanResult(ctx, result); err != nil {
		logger.ErrorContext(ctx, "Staleness Service: failed to apply scan result for target %d: %v", result.TargetID, err)
		return err
	}
	return nil
}

func (s *service) DownPorts(ctx context.Context) ([]domain.DownPort, error) {
	return s.repo.ListDown(ctx)
}

// RemovePorts deletes exactly the given ports. Duplicate ids are collapsed;
// any non-positive id rejects the whole request.
func (s *service) RemovePorts(ctx context.Context, ids []domain.PortID) (int, error) {
	if len(ids) == 0 {
		return 0, ErrEmptyPortIDs
	}

	unique := make([]domain.PortID, 0, len(ids))
	seen := make(map[domain.PortID]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return 0, ErrInvalidPortID
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	deleted, err := s.repo.DeleteByIDs(ctx, unique)
	if err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "Staleness Service: removed %d of %d requested ports", deleted, len(unique))
	return deleted, nil
}
