package usecase

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
)

func newTestTicketService(t *testing.T, tracer *recordingTracer) (*TicketService, *Reconciler) {
	t.Helper()
	rec := newTestReconciler(t, entity.SourceLocal, tracer)
	return NewTicketService(rec, logger.NewNop()), rec
}

func TestCreateTicket(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestTicketService(t, nil)

	created, err := svc.CreateTicket(ctx, CreateTicketInput{
		PIR:             "jedsv99901",
		PassengerName:   "Sara Al-Harbi",
		Flight:          "SV999",
		CurrentLocation: "JED T1",
	})
	require.NoError(t, err)

	assert.Equal(t, "JEDSV99901", created.PIR)
	assert.Equal(t, entity.StatusInProgress, created.Status)
	assert.False(t, created.IsConfirmedByPassenger)
	assert.Equal(t, "تم إنشاء البلاغ", created.History[0].Status)
	assert.True(t, created.History[1].IsEmpty())

	// both views exist
	_, err = rec.FindRecordByPIR(ctx, "JEDSV99901")
	require.NoError(t, err)
	report, err := rec.FindReportByPIR(ctx, "JEDSV99901")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, report.Status)
}

func TestCreateTicketValidation(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestTicketService(t, nil)

	_, err := svc.CreateTicket(ctx, CreateTicketInput{PIR: "JEDSV99901"})
	assert.ErrorIs(t, err, entity.ErrValidation)

	records, _ := rec.Records(ctx)
	assert.Empty(t, records, "failed validation must leave the store untouched")
}

func TestCreateTicketNeverPushes(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{}
	svc, _ := newTestTicketService(t, tracer)

	_, err := svc.CreateTicket(ctx, CreateTicketInput{
		PIR:           "JEDSV99901",
		PassengerName: "Sara",
		Flight:        "SV999",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, tracer.pushCount())
}

func TestRegisterFoundBagSynthesizesPIR(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTicketService(t, nil)

	created, err := svc.RegisterFoundBag(ctx, FoundBagInput{
		CurrentLocation: "Lost and found office",
		Photo1:          "data:image/jpeg;base64,AAAA",
		AiFeatures:      &entity.AiFeatures{Brand: "Samsonite", Color: "Black"},
	})
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^UNTAGGED-\d+$`), created.PIR)
	assert.Equal(t, entity.StatusFoundAwaiting, created.Status)
	assert.Contains(t, created.History[0].Details, "Samsonite")
	assert.NotNil(t, created.AiFeatures)
}

func TestRegisterFoundBagShortTag(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTicketService(t, nil)

	created, err := svc.RegisterFoundBag(ctx, FoundBagInput{
		ShortTag:        true,
		CurrentLocation: "Lost and found office",
		Photo1:          "data:image/jpeg;base64,AAAA",
	})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^UNTG-\d{4}$`), created.PIR)
	assert.Equal(t, entity.StatusFoundAwaiting, created.Status)
}

func TestRegisterFoundBagShortTagIgnoredWithPIR(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTicketService(t, nil)

	created, err := svc.RegisterFoundBag(ctx, FoundBagInput{
		PIR:             "fralh65432",
		ShortTag:        true,
		CurrentLocation: "Carousel 3",
		Photo1:          "data:image/jpeg;base64,AAAA",
	})
	require.NoError(t, err)
	assert.Equal(t, "FRALH65432", created.PIR)
}

func TestRegisterFoundBagKeepsSuppliedPIR(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestTicketService(t, nil)

	created, err := svc.RegisterFoundBag(ctx, FoundBagInput{
		PIR:             "fralh65432",
		CurrentLocation: "Carousel 3",
		Photo1:          "data:image/jpeg;base64,AAAA",
	})
	require.NoError(t, err)
	assert.Equal(t, "FRALH65432", created.PIR)
}

func TestRegisterFoundBagRequiresPhoto(t *testing.T) {
	svc, _ := newTestTicketService(t, nil)
	_, err := svc.RegisterFoundBag(context.Background(), FoundBagInput{CurrentLocation: "Carousel 3"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestConfirmOwnershipOverwritesSlotOne(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestTicketService(t, nil)

	base := time.Now().Add(-time.Hour)
	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:           "JEDSV11111",
		PassengerName: "Omar",
		Status:        entity.StatusFoundAwaiting,
		History: [entity.HistorySlots]entity.HistoryEvent{
			{Timestamp: base, Status: "found"},
			{Timestamp: base.Add(-time.Hour), Status: "unloaded"},
			{Timestamp: base.Add(-2 * time.Hour), Status: "checked in"},
		},
	}))

	require.NoError(t, svc.ConfirmOwnership(ctx, "JEDSV11111"))

	record, err := rec.FindRecordByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.True(t, record.IsConfirmedByPassenger)
	assert.Equal(t, "تأكيد ملكية من الراكب", record.History[0].Status)
	// slots 2 and 3 untouched
	assert.Equal(t, "unloaded", record.History[1].Status)
	assert.Equal(t, "checked in", record.History[2].Status)
}

func TestCompleteDelivery(t *testing.T) {
	ctx := context.Background()
	tracer := &recordingTracer{}
	svc, rec := newTestTicketService(t, tracer)

	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:    "JEDSV11111",
		Status: entity.StatusOutForDelivery,
	}))
	tracer.mu.Lock()
	tracer.pushes = nil
	tracer.mu.Unlock()

	require.NoError(t, svc.CompleteDelivery(ctx, "JEDSV11111", DeliveryDetails{
		IDType:   "هوية وطنية",
		IDNumber: "1099887766",
	}))

	record, err := rec.FindRecordByPIR(ctx, "JEDSV11111")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDelivered, record.Status)
	assert.True(t, record.IsConfirmedByPassenger)
	assert.Contains(t, record.History[0].Details, "1099887766")
	assert.Equal(t, 1, tracer.pushCount(), "delivery must reach the tracer in local mode too")
}

func TestCompleteDeliveryValidation(t *testing.T) {
	svc, _ := newTestTicketService(t, nil)
	err := svc.CompleteDelivery(context.Background(), "JEDSV11111", DeliveryDetails{IDType: "passport"})
	assert.ErrorIs(t, err, entity.ErrValidation)
}

func TestOverdueRecords(t *testing.T) {
	ctx := context.Background()
	svc, rec := newTestTicketService(t, nil)

	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:    "OLDPIR1",
		Status: entity.StatusInProgress,
		History: [entity.HistorySlots]entity.HistoryEvent{
			{Timestamp: old, Status: "opened"},
		},
	}))
	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:    "OLDPIR2",
		Status: entity.StatusDelivered,
		History: [entity.HistorySlots]entity.HistoryEvent{
			{Timestamp: old, Status: "opened"},
		},
	}))
	require.NoError(t, rec.AddRecord(ctx, entity.BaggageRecord{
		PIR:    "FRESH1",
		Status: entity.StatusInProgress,
		History: [entity.HistorySlots]entity.HistoryEvent{
			{Timestamp: time.Now(), Status: "opened"},
		},
	}))

	overdue, err := svc.OverdueRecords(ctx, 24*time.Hour)
	require.NoError(t, err)
	require.Len(t, overdue, 1)
	assert.Equal(t, "OLDPIR1", overdue[0].PIR)
}
