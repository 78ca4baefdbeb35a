package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
	ifaceRepo "baggage-service/internal/interface/repository"
	"baggage-service/pkg/logger"
)

// recordingTracer counts pushes so tests can assert on the sync
// behaviour without a bridge.
type recordingTracer struct {
	mu      sync.Mutex
	pushes  []string
	dataset []entity.BaggageRecord
}

func (f *recordingTracer) ListAll(ctx context.Context) ([]entity.BaggageRecord, error) {
	return f.dataset, nil
}

func (f *recordingTracer) FindByQuery(ctx context.Context, value string, kind entity.LookupKind) (*entity.BaggageRecord, error) {
	if match := entity.MatchLookup(f.dataset, value, kind); match != nil {
		rec := *match
		return &rec, nil
	}
	return nil, nil
}

func (f *recordingTracer) PushUpdate(ctx context.Context, pir string, patch entity.RecordPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, pir)
	return nil
}

func (f *recordingTracer) pushCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pushes)
}

func newTestReconciler(t *testing.T, mode entity.SourceMode, tracer *recordingTracer) *Reconciler {
	t.Helper()
	if tracer == nil {
		tracer = &recordingTracer{}
	}
	return NewReconciler(
		ifaceRepo.NewMemoryRecordRepository(),
		ifaceRepo.NewMemoryReportRepository(),
		tracer,
		ifaceRepo.NewMemoryAuditRepository(100),
		BestEffortPolicy{},
		mode,
		logger.NewNop(),
		nil,
	)
}

func TestUpdateRecordKeepsViewsConsistent(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:           "JEDSV99999",
		PassengerName: "Sara",
		Flight:        "SV999",
		Status:        entity.StatusInProgress,
	}))

	status := entity.StatusUrgent
	require.NoError(t, rec.UpdateRecord(ctx, "jedsv99999", entity.RecordPatch{Status: &status}))

	record, err := rec.FindRecordByPIR(ctx, "JEDSV99999")
	require.NoError(t, err)
	report, err := rec.FindReportByPIR(ctx, "JEDSV99999")
	require.NoError(t, err)

	assert.Equal(t, entity.StatusUrgent, record.Status)
	assert.Equal(t, entity.StatusUrgent, report.Status)
	assert.Equal(t, record.LastUpdate, report.LastUpdate,
		"record and report must carry the same effective timestamp")
}

func TestUpdateRecordCaseInsensitiveNoDuplicates(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusInProgress}))

	status := entity.StatusResolved
	require.NoError(t, rec.UpdateRecord(ctx, "  jedsv11111 ", entity.RecordPatch{Status: &status}))

	records, err := rec.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, entity.StatusResolved, records[0].Status)

	reports, err := rec.Reports(ctx)
	require.NoError(t, err)
	require.Len(t, reports, 1)
}

func TestUpdateRecordSynthesizesOnMiss(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)

	name := "Lina"
	status := entity.StatusUrgent
	require.NoError(t, rec.UpdateRecord(ctx, "RUHSV777", entity.RecordPatch{
		PIR:           "RUHSV777",
		PassengerName: &name,
		Status:        &status,
	}))

	record, err := rec.FindRecordByPIR(ctx, "RUHSV777")
	require.NoError(t, err)
	assert.Equal(t, "Lina", record.PassengerName)

	report, err := rec.FindReportByPIR(ctx, "RUHSV777")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusUrgent, report.Status)
	assert.Equal(t, "Lina", report.PassengerName)
}

func TestLocalModeUpdateDoesNotPush(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{}
	rec := newTestReconciler(t, entity.SourceLocal, tracer)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusInProgress}))
	status := entity.StatusUrgent
	require.NoError(t, rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &status}))

	assert.Equal(t, 0, tracer.pushCount())
}

func TestDeliveredAlwaysPushes(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{}
	rec := newTestReconciler(t, entity.SourceLocal, tracer)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusOutForDelivery}))
	assert.Equal(t, 0, tracer.pushCount(), "creation never pushes")

	status := entity.StatusDelivered
	require.NoError(t, rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &status}))

	assert.Equal(t, 1, tracer.pushCount(), "delivery pushes even in local mode")
}

func TestRemoteModeUpdatePushes(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{}
	rec := newTestReconciler(t, entity.SourceRemote, tracer)

	status := entity.StatusUrgent
	require.NoError(t, rec.UpdateRecord(ctx, "FRALH65432", entity.RecordPatch{PIR: "FRALH65432", Status: &status}))

	assert.Equal(t, 1, tracer.pushCount())
}

func TestSequentialUpdatesLastWriteWins(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusInProgress}))

	first := entity.StatusNeedsStaffReview
	second := entity.StatusResolved
	require.NoError(t, rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &first}))
	require.NoError(t, rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &second}))

	record, err := rec.FindRecordByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResolved, record.Status)

	report, err := rec.FindReportByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusResolved, report.Status)
}

func TestConcurrentUpdatesSamePIRStayConsistent(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)
	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusInProgress}))

	var wg sync.WaitGroup
	statuses := []string{entity.StatusUrgent, entity.StatusNeedsStaffReview, entity.StatusOutForDelivery, entity.StatusResolved}
	for i := range statuses {
		wg.Add(1)
		go func(s string) {
			defer wg.Done()
			st := s
			_ = rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &st})
		}(statuses[i])
	}
	wg.Wait()

	record, err := rec.FindRecordByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	report, err := rec.FindReportByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)

	// whichever write landed last, both views agree
	assert.Equal(t, record.Status, report.Status)
	assert.Equal(t, record.LastUpdate, report.LastUpdate)
}

func TestSetSourceModeLazyResync(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{dataset: ifaceRepo.SeedRecords()}
	rec := newTestReconciler(t, entity.SourceLocal, tracer)

	require.NoError(t, rec.SetSourceMode(ctx, entity.SourceRemote))

	reports, err := rec.Reports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 2, "empty projection resyncs from the tracer on first switch")

	// flipping back and forth must not resync again
	require.NoError(t, rec.SetSourceMode(ctx, entity.SourceLocal))
	tracer.dataset = nil
	require.NoError(t, rec.SetSourceMode(ctx, entity.SourceRemote))

	reports, err = rec.Reports(ctx)
	require.NoError(t, err)
	assert.Len(t, reports, 2)
}

func TestUpdateRecordRejectsEmptyPIR(t *testing.T) {
	rec := newTestReconciler(t, entity.SourceLocal, nil)
	err := rec.UpdateRecord(context.Background(), "   ", entity.RecordPatch{})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestUpdateRecordUsesExplicitTimestamp(t *testing.T) {
	ctx := context.Background()
	rec := newTestReconciler(t, entity.SourceLocal, nil)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{PIR: "JEDSV11111", Status: entity.StatusInProgress}))

	ts := time.Date(2024, 10, 28, 7, 0, 0, 0, time.UTC)
	status := entity.StatusUrgent
	require.NoError(t, rec.UpdateRecord(ctx, "JEDSV11111", entity.RecordPatch{Status: &status, LastUpdate: &ts}))

	record, err := rec.FindRecordByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, ts, record.LastUpdate)

	report, err := rec.FindReportByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, ts, report.LastUpdate)
}
