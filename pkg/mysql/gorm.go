package mysql

import (
	"fmt"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage/types"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DBConnOptions struct {
	Host     string
	Port     uint
	Username string
	Password string
	Database string
}

func (o DBConnOptions) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		o.Username,
		o.Password,
		o.Host,
		o.Port,
		o.Database,
	)
}

func NewMysqlConnection(cfg DBConnOptions) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Discard,
	})
}

// GormMigrations creates or updates the tables the orchestrator reads and
// writes. servers and ports are shared with the inventory CRUD layer.
func GormMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&types.Server{},
		&types.Port{},
		&types.ScanJob{},
		&types.Settings{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}
	return nil
}
