package repository

import (
	"context"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/utils"
)

// MemoryRecordRepository implements RecordRepository with an in-memory
// list, most-recent-first. This is the default backend; stations with a
// MongoDB deployment use MongoRecordRepository instead.
type MemoryRecordRepository struct {
	mu      sync.RWMutex
	records []entity.BaggageRecord
}

// NewMemoryRecordRepository creates an empty in-memory record store
func NewMemoryRecordRepository() *MemoryRecordRepository {
	return &MemoryRecordRepository{}
}

var _ repository.RecordRepository = (*MemoryRecordRepository)(nil)

// GetAll returns a copy of the record list, insertion order preserved
func (r *MemoryRecordRepository) GetAll(ctx context.Context) ([]entity.BaggageRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.BaggageRecord, len(r.records))
	copy(out, r.records)
	return out, nil
}

// FindByPIR finds a record by its normalized PIR
func (r *MemoryRecordRepository) FindByPIR(ctx context.Context, pir string) (*entity.BaggageRecord, error) {
	key := utils.NormalizePIR(pir)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.records {
		if utils.NormalizePIR(r.records[i].PIR) == key {
			rec := r.records[i]
			return &rec, nil
		}
	}
	return nil, entity.ErrNotFound
}

// Upsert merges the patch into the matching record, or synthesizes a
// new one when the patch carries a PIR and no record matches
func (r *MemoryRecordRepository) Upsert(ctx context.Context, pir string, patch entity.RecordPatch, ts time.Time) error {
	key := utils.NormalizePIR(pir)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.records {
		if utils.NormalizePIR(r.records[i].PIR) == key {
			patch.Apply(&r.records[i])
			r.records[i].LastUpdate = ts
			return nil
		}
	}

	if patch.PIR != "" {
		rec := patch.Synthesize(key, ts)
		r.records = append([]entity.BaggageRecord{rec}, r.records...)
	}
	return nil
}

// Add canonicalizes the PIR and prepends the record
func (r *MemoryRecordRepository) Add(ctx context.Context, rec entity.BaggageRecord) error {
	rec.PIR = utils.NormalizePIR(rec.PIR)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = append([]entity.BaggageRecord{rec}, r.records...)
	return nil
}
