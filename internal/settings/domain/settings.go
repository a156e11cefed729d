package domain

import (
	"errors"
	"time"
)

const (
	MinScanIntervalMinutes = 1
	MaxScanIntervalMinutes = 1440
	MinScanConcurrency     = 1
	MaxScanConcurrency     = 10
)

var (
	ErrInvalidScanInterval    = errors.New("scan interval must be between 1 and 1440 minutes")
	ErrInvalidScanConcurrency = errors.New("scan concurrency must be between 1 and 10")
)

// Settings is the singleton scan configuration maintained by the settings screen.
type Settings struct {
	ScanEnabled         bool
	ScanIntervalMinutes int
	ScanConcurrency     int
	UpdatedAt           time.Time
}

func Defaults() Settings {
	return Settings{
		ScanEnabled:         true,
		ScanIntervalMinutes: MaxScanIntervalMinutes,
		ScanConcurrency:     2,
	}
}

func (s Settings) Validate() error {
	if s.ScanIntervalMinutes < MinScanIntervalMinutes || s.ScanIntervalMinutes > MaxScanIntervalMinutes {
		return ErrInvalidScanInterval
	}
	if s.ScanConcurrency < MinScanConcurrency || s.ScanConcurrency > MaxScanConcurrency {
		return ErrInvalidScanConcurrency
	}
	return nil
}

// Clamped pulls out-of-range values back into their bounds.
func (s Settings) Clamped() Settings {
	s.ScanIntervalMinutes = clamp(s.ScanIntervalMinutes, MinScanIntervalMinutes, MaxScanIntervalMinutes)
	s.ScanConcurrency = clamp(s.ScanConcurrency, MinScanConcurrency, MaxScanConcurrency)
	return s
}

func (s Settings) ScanInterval() time.Duration {
	return time.Duration(s.ScanIntervalMinutes) * time.Minute
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
