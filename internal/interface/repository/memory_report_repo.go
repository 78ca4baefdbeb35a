package repository

import (
	"context"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/utils"
)

// MemoryReportRepository implements ReportRepository with an in-memory
// list, most-recent-first.
type MemoryReportRepository struct {
	mu      sync.RWMutex
	reports []entity.BaggageReport
}

// NewMemoryReportRepository creates an empty report projection store
func NewMemoryReportRepository() *MemoryReportRepository {
	return &MemoryReportRepository{}
}

var _ repository.ReportRepository = (*MemoryReportRepository)(nil)

// GetAll returns a copy of the report list
func (r *MemoryReportRepository) GetAll(ctx context.Context) ([]entity.BaggageReport, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entity.BaggageReport, len(r.reports))
	copy(out, r.reports)
	return out, nil
}

// FindByPIR finds a report by its normalized PIR
func (r *MemoryReportRepository) FindByPIR(ctx context.Context, pir string) (*entity.BaggageReport, error) {
	key := utils.NormalizePIR(pir)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.reports {
		if utils.NormalizePIR(r.reports[i].PIR) == key {
			rep := r.reports[i]
			return &rep, nil
		}
	}
	return nil, entity.ErrNotFound
}

// ApplyStatusChange updates the matching card in place, or inserts the
// seed when no card exists for the PIR yet
func (r *MemoryReportRepository) ApplyStatusChange(ctx context.Context, pir, status string, ts time.Time, seed entity.BaggageReport) error {
	key := utils.NormalizePIR(pir)

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.reports {
		if utils.NormalizePIR(r.reports[i].PIR) == key {
			if status != "" {
				r.reports[i].Status = status
			}
			r.reports[i].LastUpdate = ts
			return nil
		}
	}

	seed.PIR = key
	if seed.ID == "" {
		seed.ID = key
	}
	if status != "" {
		seed.Status = status
	}
	seed.LastUpdate = ts
	r.reports = append([]entity.BaggageReport{seed}, r.reports...)
	return nil
}

// ApplyCreation prepends a freshly derived projection
func (r *MemoryReportRepository) ApplyCreation(ctx context.Context, rep entity.BaggageReport) error {
	rep.PIR = utils.NormalizePIR(rep.PIR)
	if rep.ID == "" {
		rep.ID = rep.PIR
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = append([]entity.BaggageReport{rep}, r.reports...)
	return nil
}

// Replace swaps the whole projection list (full resync)
func (r *MemoryReportRepository) Replace(ctx context.Context, reps []entity.BaggageReport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reports = make([]entity.BaggageReport, len(reps))
	copy(r.reports, reps)
	return nil
}

// Count returns the number of cards currently held
func (r *MemoryReportRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reports), nil
}
