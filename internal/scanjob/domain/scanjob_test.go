package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Lifecycle(t *testing.T) {
	assert.True(t, StatusQueued.IsLive())
	assert.True(t, StatusScanning.IsLive())
	assert.False(t, StatusDone.IsLive())

	for _, s := range []Status{StatusDone, StatusError, StatusCanceled, StatusMissing} {
		assert.True(t, s.IsTerminal(), s)
	}
	assert.False(t, StatusScanning.IsTerminal())

	assert.Less(t, StatusQueued.Rank(), StatusScanning.Rank())
	assert.Less(t, StatusScanning.Rank(), StatusCanceled.Rank())
}

func TestScanJob_RegressesFrom(t *testing.T) {
	prev := ScanJob{ID: 1, Status: StatusScanning, CompletedUnits: 500}

	assert.True(t, ScanJob{ID: 1, Status: StatusQueued}.RegressesFrom(prev))
	assert.True(t, ScanJob{ID: 1, Status: StatusScanning, CompletedUnits: 499}.RegressesFrom(prev))
	assert.False(t, ScanJob{ID: 1, Status: StatusScanning, CompletedUnits: 500}.RegressesFrom(prev))
	assert.False(t, ScanJob{ID: 1, Status: StatusDone, CompletedUnits: 65535}.RegressesFrom(prev))
	assert.False(t, MissingJob(1).RegressesFrom(prev))
}

func TestScanJob_SameState(t *testing.T) {
	finished := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	detail := "agent crashed"

	a := ScanJob{ID: 3, Status: StatusError, ErrorDetail: &detail, FinishedAt: &finished}
	b := a
	otherDetail := "agent crashed"
	b.ErrorDetail = &otherDetail
	assert.True(t, a.SameState(b))

	b.FoundUnits = 1
	assert.False(t, a.SameState(b))
}

func TestEvent_Final(t *testing.T) {
	assert.True(t, Event{Job: MissingJob(4)}.Final())
	assert.True(t, Event{StreamError: "db down"}.Final())
	assert.False(t, Event{Job: ScanJob{Status: StatusScanning}}.Final())
	assert.False(t, Event{Job: ScanJob{Status: StatusDone}, Heartbeat: true}.Final())
}
