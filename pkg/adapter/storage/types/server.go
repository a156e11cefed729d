package types

// Server is owned by the inventory CRUD layer; only the columns the scan
// orchestrator reads are mapped here.
type Server struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string `gorm:"column:name;size:255;not null"`
	IP              string `gorm:"column:ip;size:64;not null"`
	HostID          *int64 `gorm:"column:host_id;index"`
	ExcludeFromScan bool   `gorm:"column:exclude_from_scan;not null"`

	Ports []Port `gorm:"foreignKey:ServerID;constraint:OnDelete:CASCADE"`
}

func (Server) TableName() string {
	return "servers"
}
