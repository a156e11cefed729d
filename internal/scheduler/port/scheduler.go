package port

import (
	"context"
)

// TargetRepo reads the servers that scans are run against.
type TargetRepo interface {
	Exists(ctx context.Context, targetID int64) (bool, error)
	// ListScannable returns ids of targets not excluded from scanning.
	ListScannable(ctx context.Context) ([]int64, error)
}
