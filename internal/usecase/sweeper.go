package usecase

import (
	"context"
	"sync/atomic"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"
)

// UrgentSweeper periodically reconciles local urgent records against
// the global tracer: any fresher global state is fed back through the
// reconciler (with the tracer's own timestamp) so cards and records
// stay current. A cycle is skipped while the previous one is still
// talking to the tracer, keeping concurrent requests per record bounded.
type UrgentSweeper struct {
	reconciler *Reconciler
	tracer     repository.TracerRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
	interval   time.Duration
	busy       atomic.Bool
}

// NewUrgentSweeper creates a sweeper with the given poll interval
func NewUrgentSweeper(rec *Reconciler, tracer repository.TracerRepository, interval time.Duration, log logger.Logger, m *metrics.Metrics) *UrgentSweeper {
	return &UrgentSweeper{
		reconciler: rec,
		tracer:     tracer,
		logger:     log,
		metrics:    m,
		interval:   interval,
	}
}

// Start runs the sweep loop until ctx is cancelled
func (s *UrgentSweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Urgent sweep stopped")
			return
		case <-ticker.C:
			if err := s.Sweep(ctx); err != nil {
				s.logger.Error("Error during urgent sweep", "error", err)
			}
		}
	}
}

// Sweep runs one reconciliation cycle. Returns nil immediately when the
// previous cycle is still in flight.
func (s *UrgentSweeper) Sweep(ctx context.Context) error {
	if !s.busy.CompareAndSwap(false, true) {
		s.logger.Debug("Previous sweep still running, skipping cycle")
		return nil
	}
	defer s.busy.Store(false)

	start := time.Now()

	records, err := s.reconciler.Records(ctx)
	if err != nil {
		return err
	}

	urgent := 0
	for _, rec := range records {
		if rec.Status != entity.StatusUrgent {
			continue
		}
		urgent++

		global, err := s.tracer.FindByQuery(ctx, rec.PIR, entity.LookupPIR)
		if err != nil {
			// Read-path degradation: keep last-known local data.
			s.logger.Warn("Tracer fetch failed during sweep", "pir", rec.PIR, "error", err)
			continue
		}
		if global == nil {
			continue
		}

		if err := s.reconciler.UpdateRecord(ctx, rec.PIR, entity.PatchFromRecord(*global)); err != nil {
			s.logger.Error("Failed to apply global update", "pir", rec.PIR, "error", err)
		}
	}

	if s.metrics != nil {
		s.metrics.SweepDuration.Observe(time.Since(start).Seconds())
	}
	if urgent > 0 {
		s.logger.Info("Urgent sweep completed", "urgent", urgent, "took", time.Since(start).String())
	}
	return nil
}
