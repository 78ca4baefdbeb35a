package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
)

func TestMemoryRecordRepoAddAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRecordRepository()

	require.NoError(t, repo.Add(ctx, entity.BaggageRecord{PIR: "jedsv11111", Status: entity.StatusInProgress}))
	require.NoError(t, repo.Add(ctx, entity.BaggageRecord{PIR: "JEDSV22222", Status: entity.StatusUrgent}))

	// newest first
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "JEDSV22222", all[0].PIR)
	assert.Equal(t, "JEDSV11111", all[1].PIR)

	// case-insensitive find
	rec, err := repo.FindByPIR(ctx, " jedsv22222 ")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUrgent, rec.Status)

	_, err = repo.FindByPIR(ctx, "MISSING")
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestMemoryRecordRepoUpsertMerge(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRecordRepository()
	require.NoError(t, repo.Add(ctx, entity.BaggageRecord{
		PIR:           "JEDSV11111",
		PassengerName: "Omar",
		Status:        entity.StatusInProgress,
	}))

	ts := time.Now().Add(time.Minute)
	status := entity.StatusResolved
	require.NoError(t, repo.Upsert(ctx, "jedsv11111", entity.RecordPatch{Status: &status}, ts))

	rec, err := repo.FindByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResolved, rec.Status)
	assert.Equal(t, ts, rec.LastUpdate)
	assert.Equal(t, "Omar", rec.PassengerName)

	all, _ := repo.GetAll(ctx)
	assert.Len(t, all, 1, "merge must not duplicate the record")
}

func TestMemoryRecordRepoUpsertSynthesizes(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRecordRepository()

	ts := time.Now()
	name := "Lina"
	require.NoError(t, repo.Upsert(ctx, "RUHSV777", entity.RecordPatch{PIR: "RUHSV777", PassengerName: &name}, ts))

	rec, err := repo.FindByPIR(ctx, "ruhsv777")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, rec.Status)
	assert.Equal(t, "Lina", rec.PassengerName)
}

func TestMemoryRecordRepoUpsertWithoutPIRIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRecordRepository()

	status := entity.StatusUrgent
	require.NoError(t, repo.Upsert(ctx, "GHOST1", entity.RecordPatch{Status: &status}, time.Now()))

	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
