package storage_test

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	gormMysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormMysql.New(gormMysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	return db, mock
}

var scanJobColumns = []string{
	"id", "target_id", "live_target_id", "status", "total_units", "completed_units",
	"found_units", "error_detail", "created_at", "started_at", "finished_at", "updated_at",
}

func scanJobRow(rows *sqlmock.Rows, id, targetID int64, status string, completed int) *sqlmock.Rows {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	var live interface{}
	var finished interface{}
	if status == "queued" || status == "scanning" {
		live = targetID
	} else {
		finished = now
	}
	return rows.AddRow(id, targetID, live, status, 65535, completed, 0, nil, now, nil, finished, now)
}
