package agent

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"time"
)

var ErrInvalidHeartbeat = errors.New("invalid heartbeat")

// heartbeatFile is the JSON document the agent rewrites on every beat.
// unix wins over timestamp when both are present.
type heartbeatFile struct {
	Timestamp string `json:"timestamp"`
	Unix      int64  `json:"unix"`
}

type FileHeartbeat struct {
	path string
}

func NewFileHeartbeat(path string) *FileHeartbeat {
	return &FileHeartbeat{path: path}
}

func (h *FileHeartbeat) LastBeat(_ context.Context) (time.Time, error) {
	content, err := os.ReadFile(h.path)
	if err != nil {
		return time.Time{}, err
	}

	var beat heartbeatFile
	if err := json.Unmarshal(content, &beat); err != nil {
		return time.Time{}, ErrInvalidHeartbeat
	}

	if beat.Unix > 0 {
		return time.Unix(beat.Unix, 0), nil
	}
	if beat.Timestamp == "" {
		return time.Time{}, ErrInvalidHeartbeat
	}

	seen, err := time.Parse(time.RFC3339Nano, beat.Timestamp)
	if err != nil {
		return time.Time{}, ErrInvalidHeartbeat
	}
	return seen, nil
}
