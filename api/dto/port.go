package dto

type DownPort struct {
	ID                  int64   `json:"id"`
	ServerID            int64   `json:"serverId"`
	Port                int     `json:"port"`
	Note                *string `json:"note"`
	ServerName          string  `json:"serverName"`
	ServerIP            string  `json:"serverIp"`
	HostName            *string `json:"hostName"`
	LastConfirmedOpenAt string  `json:"lastConfirmedOpenAt,omitempty"`
	LastScanAttemptAt   string  `json:"lastScanAttemptAt,omitempty"`
}

type DownPortList struct {
	Ports []*DownPort `json:"ports"`
	Count int         `json:"count"`
}

type DeletePortsRequest struct {
	IDs []int64 `json:"ids"`
}

type DeletePortsResponse struct {
	Deleted int `json:"deleted"`
}
