package usecase

import (
	"context"
	"fmt"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// History event texts written by the staff flows.
const (
	historyTicketCreated = "تم إنشاء البلاغ"
	historyTicketDetails = "تم إنشاء البلاغ يدويًا بواسطة موظف."
	historyBagFound      = "تم العثور عليها وتصنيفها مزدوجاً"
	historyDelivered     = "تم التسليم النهائي"
	historyConfirmed     = "تأكيد ملكية من الراكب"

	nextStepAwaitingMatch = "بانتظار مطابقة الراكب."
)

// CreateTicketInput is the staff "create ticket" form. Validation runs
// before any store mutation; a failing input leaves the store untouched.
type CreateTicketInput struct {
	PIR             string `json:"pir" validate:"required"`
	PassengerName   string `json:"passengerName" validate:"required"`
	Flight          string `json:"flight" validate:"required"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	CurrentLocation string `json:"currentLocation"`
	Status          string `json:"status"`
}

// FoundBagInput registers a bag found on the ramp or in the terminal.
// No PIR is required; one is synthesized when absent. ShortTag asks for
// the hand-writable UNTG-<digits> form instead of the long timestamp
// identifier.
type FoundBagInput struct {
	PIR             string             `json:"pir"`
	ShortTag        bool               `json:"shortTag"`
	PassengerName   string             `json:"passengerName"`
	CurrentLocation string             `json:"currentLocation" validate:"required"`
	Photo1          string             `json:"photo1" validate:"required,min=10"`
	Photo2          string             `json:"photo2"`
	AiFeatures      *entity.AiFeatures `json:"aiFeatures"`
}

// DeliveryDetails carries the identity check captured at handover.
type DeliveryDetails struct {
	IDType   string `json:"idType" validate:"required"`
	IDNumber string `json:"idNumber" validate:"required"`
}

// TicketService implements the staff lifecycle flows on top of the
// reconciler: manual creation, found-bag registration, passenger
// confirmation and final delivery.
type TicketService struct {
	reconciler *Reconciler
	validate   *validator.Validate
	logger     logger.Logger
}

// NewTicketService creates the staff-flow service
func NewTicketService(rec *Reconciler, log logger.Logger) *TicketService {
	return &TicketService{
		reconciler: rec,
		validate:   validator.New(),
		logger:     log,
	}
}

// CreateTicket opens a new report from the manual staff form.
func (s *TicketService) CreateTicket(ctx context.Context, in CreateTicketInput) (*entity.BaggageRecord, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	now := time.Now()
	status := in.Status
	if status == "" {
		status = entity.StatusInProgress
	}

	rec := entity.BaggageRecord{
		PIR:              utils.NormalizePIR(in.PIR),
		PassengerName:    in.PassengerName,
		Flight:           in.Flight,
		Origin:           in.Origin,
		Destination:      in.Destination,
		Status:           status,
		LastUpdate:       now,
		CurrentLocation:  in.CurrentLocation,
		NextStep:         "",
		EstimatedArrival: "",
		History: [entity.HistorySlots]entity.HistoryEvent{
			{
				Timestamp: now,
				Status:    historyTicketCreated,
				Location:  in.CurrentLocation,
				Details:   historyTicketDetails,
			},
		},
		IsConfirmedByPassenger: false,
	}

	if err := s.reconciler.AddRecord(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("Ticket created", "pir", rec.PIR, "flight", rec.Flight)
	return &rec, nil
}

// RegisterFoundBag files a report for a found bag. Bags without a tag
// get a synthesized identifier (UNTAGGED-<ms> form, or the short
// UNTG-<digits> label when requested).
func (s *TicketService) RegisterFoundBag(ctx context.Context, in FoundBagInput) (*entity.BaggageRecord, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	now := time.Now()
	pir := utils.NormalizePIR(in.PIR)
	if pir == "" {
		if in.ShortTag {
			pir = utils.SynthesizeShortTag(now)
		} else {
			pir = utils.SynthesizeUntaggedPIR(now)
		}
	}

	details := "تم تسجيل الحقيبة دون بيانات بصرية."
	if in.AiFeatures != nil {
		details = fmt.Sprintf("[AI Multi-View] الماركة: %s، اللون: %s. %s",
			orNA(in.AiFeatures.Brand), orNA(in.AiFeatures.Color), in.AiFeatures.DistinctiveMarks)
	}

	rec := entity.BaggageRecord{
		PIR:              pir,
		PassengerName:    in.PassengerName,
		Flight:           entity.UnknownFlight,
		Status:           entity.StatusFoundAwaiting,
		LastUpdate:       now,
		CurrentLocation:  in.CurrentLocation,
		NextStep:         nextStepAwaitingMatch,
		EstimatedArrival: entity.UnknownFlight,
		History: [entity.HistorySlots]entity.HistoryEvent{
			{
				Timestamp: now,
				Status:    historyBagFound,
				Location:  in.CurrentLocation,
				Details:   details,
			},
		},
		BaggagePhoto:           in.Photo1,
		BaggagePhoto2:          in.Photo2,
		IsConfirmedByPassenger: false,
		AiFeatures:             in.AiFeatures,
	}

	if err := s.reconciler.AddRecord(ctx, rec); err != nil {
		return nil, err
	}
	s.logger.Info("Found bag registered", "pir", rec.PIR, "location", in.CurrentLocation)
	return &rec, nil
}

// ConfirmOwnership marks a found bag as visually confirmed by its
// passenger. The confirmation event overwrites history slot 1.
func (s *TicketService) ConfirmOwnership(ctx context.Context, pir string) error {
	rec, err := s.reconciler.FindRecordByPIR(ctx, pir)
	if err != nil {
		return err
	}

	now := time.Now()
	confirmed := true
	return s.reconciler.UpdateRecord(ctx, pir, entity.RecordPatch{
		IsConfirmedByPassenger: &confirmed,
		History: [entity.HistorySlots]*entity.HistoryEvent{
			{
				Timestamp: now,
				Status:    historyConfirmed,
				Location:  rec.CurrentLocation,
				Details:   fmt.Sprintf("أكد الراكب %s ملكية الحقيبة بصرياً.", rec.PassengerName),
			},
		},
	})
}

// CompleteDelivery closes a report after the handover identity check.
// Delivery always reaches the global tracer regardless of source mode.
func (s *TicketService) CompleteDelivery(ctx context.Context, pir string, d DeliveryDetails) error {
	if err := s.validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %v", entity.ErrValidation, err)
	}

	rec, err := s.reconciler.FindRecordByPIR(ctx, pir)
	if err != nil {
		return err
	}

	now := time.Now()
	status := entity.StatusDelivered
	confirmed := true
	return s.reconciler.UpdateRecord(ctx, pir, entity.RecordPatch{
		Status:                 &status,
		IsConfirmedByPassenger: &confirmed,
		History: [entity.HistorySlots]*entity.HistoryEvent{
			{
				Timestamp: now,
				Status:    historyDelivered,
				Location:  rec.CurrentLocation,
				Details: fmt.Sprintf(
					"إتمام بروتوكول التسليم الأمني المعتمد (SGS). هويّة الراكب (%s): %s. تم التحقق من كافة الشروط أمنياً.",
					d.IDType, d.IDNumber),
			},
		},
	})
}

// OverdueRecords returns records open longer than limit, excluding
// resolved and delivered ones.
func (s *TicketService) OverdueRecords(ctx context.Context, limit time.Duration) ([]entity.BaggageRecord, error) {
	records, err := s.reconciler.Records(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var out []entity.BaggageRecord
	for _, rec := range records {
		if rec.Status == entity.StatusResolved || rec.Status == entity.StatusDelivered {
			continue
		}
		// Slot 1 holds the newest event, so the oldest populated slot
		// approximates when the report was opened.
		opened := rec.LastUpdate
		for i := entity.HistorySlots - 1; i >= 0; i-- {
			if !rec.History[i].IsEmpty() {
				opened = rec.History[i].Timestamp
				break
			}
		}
		if now.Sub(opened) > limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
