package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/staleness/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage"
)

func TestPortRepo_ApplyScanResult(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewPortRepo(db)
	finishedAt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectExec("UPDATE `ports` SET `last_scan_attempt_at`=\\? WHERE server_id = \\?").
		WithArgs(finishedAt, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("INSERT INTO `ports` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(10, 1))

	err := repo.ApplyScanResult(context.Background(), domain.ScanResult{
		TargetID:   4,
		OpenPorts:  []int{22},
		FinishedAt: finishedAt,
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepo_ApplyScanResult_NothingOpen(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewPortRepo(db)

	mock.ExpectExec("UPDATE `ports` SET `last_scan_attempt_at`").
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.ApplyScanResult(context.Background(), domain.ScanResult{TargetID: 4, FinishedAt: time.Now()})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepo_ListDown(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewPortRepo(db)
	attempt := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	confirmed := attempt.Add(-24 * time.Hour)

	rows := sqlmock.NewRows([]string{
		"id", "server_id", "port", "note", "last_confirmed_open_at", "last_scan_attempt_at",
		"server_name", "server_ip", "host_name",
	}).
		AddRow(5, 2, 443, nil, confirmed, attempt, "db-01", "10.0.0.5", "esx-01").
		AddRow(9, 3, 8080, "admin ui", nil, attempt, "web-01", "10.0.0.9", nil)

	mock.ExpectQuery("SELECT p.id, .* FROM ports AS p JOIN servers AS s ON s.id = p.server_id LEFT JOIN servers AS h ON h.id = s.host_id " +
		"WHERE p.last_scan_attempt_at IS NOT NULL AND \\(p.last_confirmed_open_at IS NULL OR p.last_confirmed_open_at < p.last_scan_attempt_at\\) " +
		"ORDER BY s.name ASC,p.port ASC").
		WillReturnRows(rows)

	ports, err := repo.ListDown(context.Background())

	require.NoError(t, err)
	require.Len(t, ports, 2)
	assert.Equal(t, int64(5), ports[0].ID)
	assert.Equal(t, 443, ports[0].Number)
	assert.Equal(t, "db-01", ports[0].ServerName)
	require.NotNil(t, ports[0].HostName)
	assert.Equal(t, "esx-01", *ports[0].HostName)
	assert.Nil(t, ports[1].HostName)
	assert.True(t, ports[1].IsDown())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepo_DeleteByIDs_OnlyGivenIDs(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewPortRepo(db)

	mock.ExpectExec("DELETE FROM `ports` WHERE id IN \\(\\?,\\?\\)").
		WithArgs(int64(5), int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteByIDs(context.Background(), []int64{5, 9})

	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPortRepo_DeleteByIDs_EmptyListDeletesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewPortRepo(db)

	deleted, err := repo.DeleteByIDs(context.Background(), nil)

	require.NoError(t, err)
	assert.Zero(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
