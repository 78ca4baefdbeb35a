package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"
	"baggage-service/pkg/utils"
)

// Reconciler owns the record store and the report projection. Every
// write funnels through UpdateRecord or AddRecord, which keep the two
// views consistent and forward updates to the global tracer according
// to the active source mode and sync policy.
type Reconciler struct {
	records repository.RecordRepository
	reports repository.ReportRepository
	tracer  repository.TracerRepository
	audit   repository.AuditRepository
	policy  SyncPolicy
	logger  logger.Logger
	metrics *metrics.Metrics

	modeMu   sync.RWMutex
	mode     entity.SourceMode
	resynced bool

	keysMu sync.Mutex
	keys   map[string]*sync.Mutex

	pushTimeout time.Duration
}

// NewReconciler creates the engine. audit and m may be nil; tracer and
// policy are required (use TracerSimulator and NoSyncPolicy offline).
func NewReconciler(
	records repository.RecordRepository,
	reports repository.ReportRepository,
	tracer repository.TracerRepository,
	audit repository.AuditRepository,
	policy SyncPolicy,
	mode entity.SourceMode,
	log logger.Logger,
	m *metrics.Metrics,
) *Reconciler {
	return &Reconciler{
		records:     records,
		reports:     reports,
		tracer:      tracer,
		audit:       audit,
		policy:      policy,
		logger:      log,
		metrics:     m,
		mode:        mode,
		keys:        make(map[string]*sync.Mutex),
		pushTimeout: 30 * time.Second,
	}
}

// UpdateRecord applies a partial update keyed by PIR to both the record
// store and the report projection, using one effective timestamp for
// both writes. The pair of writes is a critical section per key:
// concurrent updates to the same PIR are serialized, last write wins.
// The tracer push that may follow is best-effort and never rolls the
// local writes back.
func (r *Reconciler) UpdateRecord(ctx context.Context, pir string, patch entity.RecordPatch) error {
	key := utils.NormalizePIR(pir)
	if key == "" {
		return fmt.Errorf("%w: empty PIR", entity.ErrValidation)
	}

	ts := time.Now()
	if patch.LastUpdate != nil {
		// Explicit timestamp: a synthetic value, e.g. a record imported
		// verbatim from the tracer.
		ts = *patch.LastUpdate
	}

	status := ""
	if patch.Status != nil {
		status = *patch.Status
	}

	lock := r.keyLock(key)
	lock.Lock()

	if err := r.records.Upsert(ctx, key, patch, ts); err != nil {
		lock.Unlock()
		r.countError("update_record")
		return fmt.Errorf("record upsert for %s: %w", key, err)
	}

	seed := entity.BaggageReport{
		ID:            key,
		PIR:           key,
		PassengerName: entity.UnknownPassenger,
		Flight:        entity.UnknownFlight,
		Status:        entity.StatusInProgress,
	}
	if patch.PassengerName != nil && *patch.PassengerName != "" {
		seed.PassengerName = *patch.PassengerName
	}
	if patch.Flight != nil && *patch.Flight != "" {
		seed.Flight = *patch.Flight
	}
	if err := r.reports.ApplyStatusChange(ctx, key, status, ts, seed); err != nil {
		lock.Unlock()
		r.countError("update_report")
		return fmt.Errorf("report update for %s: %w", key, err)
	}
	lock.Unlock()

	if r.metrics != nil {
		r.metrics.RecordsReconciled.Inc()
	}

	// Delivery always reaches the system of record, whatever mode the
	// staff UI happens to be in.
	if r.SourceMode() == entity.SourceRemote || status == entity.StatusDelivered {
		r.pushToTracer(ctx, key, patch, ts)
	}

	if status == entity.StatusDelivered {
		r.recordAudit(ctx, entity.AuditEntry{
			User:     "SGS Operations Agent",
			Category: entity.AuditSecurity,
			Action:   "توثيق تسليم أمني نهائي",
			Details:  fmt.Sprintf("تم إغلاق البلاغ %s بعد إتمام التسليم.", key),
			Status:   entity.AuditSuccess,
		})
	}

	return nil
}

// AddRecord registers a brand-new record: canonicalized, prepended to
// the store, and projected into a fresh card. Creation is never pushed
// to the tracer; only later updates are.
func (r *Reconciler) AddRecord(ctx context.Context, rec entity.BaggageRecord) error {
	rec.PIR = utils.NormalizePIR(rec.PIR)
	if rec.PIR == "" {
		return fmt.Errorf("%w: empty PIR", entity.ErrValidation)
	}
	if rec.LastUpdate.IsZero() {
		rec.LastUpdate = time.Now()
	}

	lock := r.keyLock(rec.PIR)
	lock.Lock()
	defer lock.Unlock()

	if err := r.records.Add(ctx, rec); err != nil {
		r.countError("add_record")
		return fmt.Errorf("record add for %s: %w", rec.PIR, err)
	}
	if err := r.reports.ApplyCreation(ctx, entity.ProjectReport(rec)); err != nil {
		r.countError("add_report")
		return fmt.Errorf("report add for %s: %w", rec.PIR, err)
	}

	if r.metrics != nil {
		r.metrics.RecordsCreated.Inc()
	}
	r.recordAudit(ctx, entity.AuditEntry{
		User:     "SGS Operations Agent",
		Category: entity.AuditData,
		Action:   "إنشاء بلاغ أمتعة",
		Details:  fmt.Sprintf("تم إنشاء البلاغ %s للراكب %s.", rec.PIR, rec.PassengerName),
		Status:   entity.AuditSuccess,
	})
	return nil
}

// SourceMode returns the active data-sourcing mode.
func (r *Reconciler) SourceMode() entity.SourceMode {
	r.modeMu.RLock()
	defer r.modeMu.RUnlock()
	return r.mode
}

// SetSourceMode switches reads between the local store and the tracer.
// No data migrates; the first switch to remote with an empty projection
// triggers a one-time full resync.
func (r *Reconciler) SetSourceMode(ctx context.Context, mode entity.SourceMode) error {
	r.modeMu.Lock()
	r.mode = mode
	needResync := mode == entity.SourceRemote && !r.resynced
	r.modeMu.Unlock()

	if !needResync {
		return nil
	}

	count, err := r.reports.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.Resync(ctx)
}

// Resync replaces the report projection with the tracer's full view.
func (r *Reconciler) Resync(ctx context.Context) error {
	records, err := r.tracer.ListAll(ctx)
	if err != nil {
		r.countError("resync")
		return fmt.Errorf("tracer resync: %w", err)
	}

	reps := make([]entity.BaggageReport, len(records))
	for i := range records {
		reps[i] = entity.ProjectReport(records[i])
		if reps[i].Status == "" {
			reps[i].Status = entity.StatusInProgress
		}
	}
	if err := r.reports.Replace(ctx, reps); err != nil {
		return err
	}

	r.modeMu.Lock()
	r.resynced = true
	r.modeMu.Unlock()

	r.logger.Info("Tracer resync completed", "reports", len(reps))
	return nil
}

// Reports returns the card list for the active mode: derived from the
// record store locally, the mirrored projection remotely.
func (r *Reconciler) Reports(ctx context.Context) ([]entity.BaggageReport, error) {
	if r.SourceMode() == entity.SourceRemote {
		return r.reports.GetAll(ctx)
	}

	records, err := r.records.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	reps := make([]entity.BaggageReport, len(records))
	for i := range records {
		reps[i] = entity.ProjectReport(records[i])
	}
	return reps, nil
}

// Records returns the canonical record list.
func (r *Reconciler) Records(ctx context.Context) ([]entity.BaggageRecord, error) {
	return r.records.GetAll(ctx)
}

// FindRecordByPIR reads a single record from the store.
func (r *Reconciler) FindRecordByPIR(ctx context.Context, pir string) (*entity.BaggageRecord, error) {
	return r.records.FindByPIR(ctx, pir)
}

// FindReportByPIR reads a single card from the projection.
func (r *Reconciler) FindReportByPIR(ctx context.Context, pir string) (*entity.BaggageReport, error) {
	return r.reports.FindByPIR(ctx, pir)
}

func (r *Reconciler) pushToTracer(ctx context.Context, key string, patch entity.RecordPatch, ts time.Time) {
	patch.LastUpdate = &ts

	pushCtx, cancel := context.WithTimeout(ctx, r.pushTimeout)
	defer cancel()

	if err := r.policy.Push(pushCtx, r.tracer, key, patch); err != nil {
		// Eventual consistency with the tracer, not atomicity: the
		// local writes stand.
		r.logger.Error("Tracer push failed", "pir", key, "error", err)
		if r.metrics != nil {
			r.metrics.TracerPushFailures.Inc()
		}
		return
	}
	if r.metrics != nil {
		r.metrics.TracerPushes.Inc()
	}
}

func (r *Reconciler) recordAudit(ctx context.Context, entry entity.AuditEntry) {
	if r.audit == nil {
		return
	}
	if err := r.audit.Record(ctx, entry); err != nil {
		r.logger.Warn("Audit record failed", "action", entry.Action, "error", err)
	}
}

func (r *Reconciler) keyLock(key string) *sync.Mutex {
	r.keysMu.Lock()
	defer r.keysMu.Unlock()

	lock, ok := r.keys[key]
	if !ok {
		lock = &sync.Mutex{}
		r.keys[key] = lock
	}
	return lock
}

func (r *Reconciler) countError(operation string) {
	if r.metrics != nil {
		r.metrics.ErrorsCount.WithLabelValues(operation).Inc()
	}
}
