package dto

type ScanSettings struct {
	ScanEnabled         bool    `json:"scanEnabled"`
	ScanIntervalMinutes int     `json:"scanIntervalMinutes"`
	ScanConcurrency     int     `json:"scanConcurrency"`
	LastScanAt          *string `json:"lastScanAt"`
}
