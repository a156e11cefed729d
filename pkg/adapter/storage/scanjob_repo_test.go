package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.apk-group.net/siem/backend/scan-orchestrator/internal/scanjob/domain"
	"gitlab.apk-group.net/siem/backend/scan-orchestrator/pkg/adapter/storage"
)

func TestScanJobRepo_CreateIfIdle_Inserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectExec("INSERT INTO `scan_jobs`").
		WillReturnResult(sqlmock.NewResult(11, 1))

	job, alreadyRunning, err := repo.CreateIfIdle(context.Background(), 7, domain.FullSweepUnits)

	require.NoError(t, err)
	assert.False(t, alreadyRunning)
	assert.Equal(t, int64(11), job.ID)
	assert.Equal(t, int64(7), job.TargetID)
	assert.Equal(t, domain.StatusQueued, job.Status)
	assert.Equal(t, domain.FullSweepUnits, job.TotalUnits)
	assert.Zero(t, job.CompletedUnits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateIfIdle_ReturnsLiveJob(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectExec("INSERT INTO `scan_jobs`").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'uniq_scan_jobs_live_target'"})
	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE live_target_id = \\?.* FOR SHARE").
		WillReturnRows(scanJobRow(sqlmock.NewRows(scanJobColumns), 5, 7, "scanning", 1200))

	job, alreadyRunning, err := repo.CreateIfIdle(context.Background(), 7, domain.FullSweepUnits)

	require.NoError(t, err)
	assert.True(t, alreadyRunning)
	assert.Equal(t, int64(5), job.ID)
	assert.Equal(t, domain.StatusScanning, job.Status)
	assert.Equal(t, 1200, job.CompletedUnits)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateIfIdle_DuplicateWithEmptyLookupRetries(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)
	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'uniq_scan_jobs_live_target'"}

	mock.ExpectExec("INSERT INTO `scan_jobs`").WillReturnError(duplicate)
	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE live_target_id = \\?.* FOR SHARE").
		WillReturnRows(sqlmock.NewRows(scanJobColumns))
	mock.ExpectExec("INSERT INTO `scan_jobs`").WillReturnError(duplicate)
	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE live_target_id = \\?.* FOR SHARE").
		WillReturnRows(scanJobRow(sqlmock.NewRows(scanJobColumns), 5, 7, "queued", 0))

	job, alreadyRunning, err := repo.CreateIfIdle(context.Background(), 7, domain.FullSweepUnits)

	require.NoError(t, err)
	assert.True(t, alreadyRunning)
	assert.Equal(t, int64(5), job.ID)
	assert.Equal(t, domain.StatusQueued, job.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateIfIdle_GivesUpAfterBoundedAttempts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)
	duplicate := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '7' for key 'uniq_scan_jobs_live_target'"}

	for i := 0; i < 3; i++ {
		mock.ExpectExec("INSERT INTO `scan_jobs`").WillReturnError(duplicate)
		mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE live_target_id = \\?.* FOR SHARE").
			WillReturnRows(sqlmock.NewRows(scanJobColumns))
	}

	job, _, err := repo.CreateIfIdle(context.Background(), 7, domain.FullSweepUnits)

	assert.ErrorContains(t, err, "Duplicate entry")
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateIfIdle_OtherErrorPropagates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectExec("INSERT INTO `scan_jobs`").
		WillReturnError(errors.New("connection reset"))

	job, _, err := repo.CreateIfIdle(context.Background(), 7, domain.FullSweepUnits)

	assert.EqualError(t, err, "connection reset")
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateMany_CountsInsertedRows(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectExec("INSERT INTO `scan_jobs` .* ON DUPLICATE KEY UPDATE").
		WillReturnResult(sqlmock.NewResult(30, 2))

	queued, err := repo.CreateMany(context.Background(), []int64{1, 2, 3}, domain.FullSweepUnits)

	require.NoError(t, err)
	assert.Equal(t, 2, queued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_CreateMany_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	queued, err := repo.CreateMany(context.Background(), nil, domain.FullSweepUnits)

	require.NoError(t, err)
	assert.Zero(t, queued)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_GetByID_Missing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE id = \\?").
		WillReturnRows(sqlmock.NewRows(scanJobColumns))

	job, err := repo.GetByID(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_ListActive_NewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	rows := sqlmock.NewRows(scanJobColumns)
	scanJobRow(rows, 9, 3, "queued", 0)
	scanJobRow(rows, 8, 2, "scanning", 4000)

	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE status IN \\(\\?,\\?\\) ORDER BY created_at DESC,id DESC").
		WithArgs("queued", "scanning").
		WillReturnRows(rows)

	jobs, err := repo.ListActive(context.Background())

	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, int64(9), jobs[0].ID)
	assert.Equal(t, int64(8), jobs[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_ListLiveTargets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectQuery("SELECT `live_target_id` FROM `scan_jobs` WHERE live_target_id IS NOT NULL").
		WillReturnRows(sqlmock.NewRows([]string{"live_target_id"}).AddRow(2).AddRow(4))

	targets, err := repo.ListLiveTargets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []int64{2, 4}, targets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_Claim_TakesOldestQueued(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `scan_jobs` WHERE status = \\?").
		WithArgs("scanning").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE status = \\? ORDER BY created_at ASC,id ASC .*FOR UPDATE SKIP LOCKED").
		WillReturnRows(scanJobRow(sqlmock.NewRows(scanJobColumns), 4, 6, "queued", 0))
	mock.ExpectExec("UPDATE `scan_jobs` SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	job, err := repo.Claim(context.Background(), 2)

	require.NoError(t, err)
	require.NotNil(t, job)
	assert.Equal(t, int64(4), job.ID)
	assert.Equal(t, domain.StatusScanning, job.Status)
	assert.NotNil(t, job.StartedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_Claim_RespectsConcurrency(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `scan_jobs`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectCommit()

	job, err := repo.Claim(context.Background(), 2)

	require.NoError(t, err)
	assert.Nil(t, job)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_UpdateProgress(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "live job is updated",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `scan_jobs` SET .*status IN \\(\\?,\\?\\)").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "unchanged live job is not an error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `scan_jobs` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE id = \\?").
					WillReturnRows(scanJobRow(sqlmock.NewRows(scanJobColumns), 3, 1, "scanning", 100))
			},
		},
		{
			name: "terminal job rejects the write",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `scan_jobs` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE id = \\?").
					WillReturnRows(scanJobRow(sqlmock.NewRows(scanJobColumns), 3, 1, "canceled", 100))
			},
			wantErr: domain.ErrJobFinalized,
		},
		{
			name: "unknown job",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("UPDATE `scan_jobs` SET").
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery("SELECT \\* FROM `scan_jobs` WHERE id = \\?").
					WillReturnRows(sqlmock.NewRows(scanJobColumns))
			},
			wantErr: domain.ErrJobNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			repo := storage.NewScanJobRepo(db)
			tt.setupMock(mock)

			err := repo.UpdateProgress(context.Background(), 3, 32768, 2)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestScanJobRepo_Finish_FirstTerminalWins(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)
	ctx := context.Background()
	finishedAt := time.Now()

	mock.ExpectExec("UPDATE `scan_jobs` SET .*finished_at IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `scan_jobs` SET .*finished_at IS NULL").
		WillReturnResult(sqlmock.NewResult(0, 0))

	applied, err := repo.Finish(ctx, 12, domain.Termination{Status: domain.StatusDone, FinishedAt: finishedAt})
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = repo.Finish(ctx, 12, domain.Termination{Status: domain.StatusCanceled, FinishedAt: finishedAt})
	require.NoError(t, err)
	assert.False(t, applied)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_LastFinishedAt(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)
	finished := time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT `finished_at` FROM `scan_jobs` WHERE status = \\? AND finished_at IS NOT NULL ORDER BY finished_at DESC").
		WillReturnRows(sqlmock.NewRows([]string{"finished_at"}).AddRow(finished))

	got, err := repo.LastFinishedAt(context.Background())

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, finished.Equal(*got))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScanJobRepo_LastFinishedAt_NoneYet(t *testing.T) {
	db, mock := newMockDB(t)
	repo := storage.NewScanJobRepo(db)

	mock.ExpectQuery("SELECT `finished_at` FROM `scan_jobs`").
		WillReturnRows(sqlmock.NewRows([]string{"finished_at"}))

	got, err := repo.LastFinishedAt(context.Background())

	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
