package dto

type ClaimResponse struct {
	Job *ScanJob `json:"job"`
}

type ProgressRequest struct {
	CompletedUnits int `json:"completedUnits"`
	FoundUnits     int `json:"foundUnits"`
}

type FinishRequest struct {
	Status      string `json:"status"`
	ErrorDetail string `json:"errorDetail,omitempty"`
	OpenPorts   []int  `json:"openPorts,omitempty"`
}

type AgentHealth struct {
	Healthy    bool    `json:"healthy"`
	AgeSeconds *int64  `json:"ageSeconds,omitempty"`
	TTLSeconds int64   `json:"ttlSeconds"`
	LastSeen   *string `json:"lastSeen,omitempty"`
	Reason     string  `json:"reason,omitempty"`
}
