package repository

import (
	"context"
	"time"

	"baggage-service/internal/domain/entity"
)

// RecordRepository defines the interface for the canonical baggage
// record store. All writes funnel through the reconciler; nothing else
// mutates the store directly.
type RecordRepository interface {
	// GetAll returns records most-recent-first (Add prepends).
	GetAll(ctx context.Context) ([]entity.BaggageRecord, error)

	// FindByPIR matches case-insensitively on the trimmed PIR and
	// returns entity.ErrNotFound on a miss.
	FindByPIR(ctx context.Context, pir string) (*entity.BaggageRecord, error)

	// Upsert merges the patch into the record with the given key. When
	// no record exists and the patch carries a PIR, a new record is
	// synthesized and prepended. ts is the effective timestamp resolved
	// by the reconciler and always overwrites LastUpdate.
	Upsert(ctx context.Context, pir string, patch entity.RecordPatch, ts time.Time) error

	// Add canonicalizes the PIR to upper case and prepends the record.
	Add(ctx context.Context, rec entity.BaggageRecord) error
}
