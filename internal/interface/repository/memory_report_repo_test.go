package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
)

func TestMemoryReportRepoStatusChangeInPlace(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	require.NoError(t, repo.ApplyCreation(ctx, entity.BaggageReport{
		PIR:           "JEDSV11111",
		PassengerName: "Omar",
		Flight:        "SV101",
		Status:        entity.StatusInProgress,
	}))

	ts := time.Now()
	require.NoError(t, repo.ApplyStatusChange(ctx, "jedsv11111", entity.StatusUrgent, ts, entity.BaggageReport{}))

	rep, err := repo.FindByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUrgent, rep.Status)
	assert.Equal(t, ts, rep.LastUpdate)
	assert.Equal(t, "Omar", rep.PassengerName)

	count, _ := repo.Count(ctx)
	assert.Equal(t, 1, count)
}

func TestMemoryReportRepoEmptyStatusKeepsExisting(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	require.NoError(t, repo.ApplyCreation(ctx, entity.BaggageReport{
		PIR:    "JEDSV11111",
		Status: entity.StatusUrgent,
	}))

	ts := time.Now()
	require.NoError(t, repo.ApplyStatusChange(ctx, "JEDSV11111", "", ts, entity.BaggageReport{}))

	rep, err := repo.FindByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUrgent, rep.Status, "empty status must not clobber")
	assert.Equal(t, ts, rep.LastUpdate, "timestamp still advances")
}

func TestMemoryReportRepoSeedsOnMiss(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()

	ts := time.Now()
	seed := entity.BaggageReport{
		PassengerName: "Unknown",
		Flight:        "N/A",
		Status:        entity.StatusInProgress,
	}
	require.NoError(t, repo.ApplyStatusChange(ctx, "NEWPIR1", entity.StatusUrgent, ts, seed))

	rep, err := repo.FindByPIR(ctx, "NEWPIR1")
	require.NoError(t, err)
	assert.Equal(t, "NEWPIR1", rep.ID)
	assert.Equal(t, entity.StatusUrgent, rep.Status)
	assert.Equal(t, "Unknown", rep.PassengerName)
}

func TestMemoryReportRepoReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryReportRepository()
	require.NoError(t, repo.ApplyCreation(ctx, entity.BaggageReport{PIR: "OLD1"}))

	require.NoError(t, repo.Replace(ctx, []entity.BaggageReport{
		{PIR: "NEW1", Status: entity.StatusInProgress},
		{PIR: "NEW2", Status: entity.StatusUrgent},
	}))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "NEW1", all[0].PIR)

	_, err = repo.FindByPIR(ctx, "OLD1")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
