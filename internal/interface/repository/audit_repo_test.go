package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
)

func TestMemoryAuditRepoRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditRepository(10)

	require.NoError(t, repo.Record(ctx, entity.AuditEntry{Action: "first", Category: entity.AuditData}))
	require.NoError(t, repo.Record(ctx, entity.AuditEntry{Action: "second", Category: entity.AuditSecurity}))

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Action, "newest first")
	assert.NotEmpty(t, entries[0].ID, "missing IDs are generated")
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestMemoryAuditRepoEvictsPastCap(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditRepository(3)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, entity.AuditEntry{Action: fmt.Sprintf("action-%d", i)}))
	}

	entries, err := repo.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "action-4", entries[0].Action)
	assert.Equal(t, "action-2", entries[2].Action, "oldest entries evicted")
}

func TestMemoryAuditRepoRecentLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAuditRepository(10)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Record(ctx, entity.AuditEntry{Action: fmt.Sprintf("action-%d", i)}))
	}

	entries, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "action-4", entries[0].Action)
}
