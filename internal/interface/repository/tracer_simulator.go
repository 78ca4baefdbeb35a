package repository

import (
	"context"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/utils"
)

// TracerSimulator is an in-memory stand-in for the WorldTracer bridge,
// used in local deployments and tests. It applies the same lookup
// semantics as the HTTP client and can inject a fixed latency to mimic
// the remote round trip.
type TracerSimulator struct {
	mu      sync.RWMutex
	records []entity.BaggageRecord
	latency time.Duration
}

// NewTracerSimulator creates a simulator pre-loaded with the given
// dataset. Pass SeedRecords() for the standard demo fixtures.
func NewTracerSimulator(seed []entity.BaggageRecord, latency time.Duration) *TracerSimulator {
	records := make([]entity.BaggageRecord, len(seed))
	copy(records, seed)
	return &TracerSimulator{records: records, latency: latency}
}

var _ repository.TracerRepository = (*TracerSimulator)(nil)

// ListAll returns a copy of the simulated global dataset
func (s *TracerSimulator) ListAll(ctx context.Context) ([]entity.BaggageRecord, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.BaggageRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}

// FindByQuery resolves an identifier by kind. A miss returns (nil, nil).
func (s *TracerSimulator) FindByQuery(ctx context.Context, value string, kind entity.LookupKind) (*entity.BaggageRecord, error) {
	if err := s.wait(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if match := entity.MatchLookup(s.records, value, kind); match != nil {
		rec := *match
		return &rec, nil
	}
	return nil, nil
}

// PushUpdate merges a partial update into the simulated dataset. An
// unknown PIR is accepted and dropped, matching the bridge behaviour.
func (s *TracerSimulator) PushUpdate(ctx context.Context, pir string, patch entity.RecordPatch) error {
	if err := s.wait(ctx); err != nil {
		return err
	}

	key := utils.NormalizePIR(pir)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.records {
		if utils.NormalizePIR(s.records[i].PIR) == key {
			patch.Apply(&s.records[i])
			if patch.LastUpdate != nil {
				s.records[i].LastUpdate = *patch.LastUpdate
			} else {
				s.records[i].LastUpdate = time.Now()
			}
			return nil
		}
	}
	return nil
}

func (s *TracerSimulator) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.latency):
		return nil
	}
}

// SeedRecords returns the demo dataset the simulator ships with: one
// urgent bag stranded in Frankfurt and one found bag awaiting claim.
func SeedRecords() []entity.BaggageRecord {
	now := time.Now()
	return []entity.BaggageRecord{
		{
			PIR:              "FRALH65432",
			PassengerName:    "أحمد المصري",
			Flight:           "LH630",
			Status:           entity.StatusUrgent,
			LastUpdate:       now,
			CurrentLocation:  "مطار فرانكفورت (FRA)",
			Origin:           "CAI",
			Destination:      "FRA",
			NextStep:         "في انتظار إعادة الجدولة على الرحلة التالية للقاهرة (CAI).",
			EstimatedArrival: "غير محدد بعد",
			History: [entity.HistorySlots]entity.HistoryEvent{
				{
					Timestamp: now,
					Status:    "تم تحديد الموقع",
					Location:  "مطار فرانكفورت (FRA)",
					Details:   "تم العثور على الحقيبة في منطقة الفرز.",
				},
				{
					Timestamp: now.Add(-24 * time.Hour),
					Status:    "تفريغ من رحلة خاطئة",
					Location:  "مطار فرانكفورت (FRA)",
					Details:   "تم تفريغها من رحلة LH902.",
				},
			},
			IsConfirmedByPassenger: false,
		},
		{
			PIR:              "IADUA12398",
			PassengerName:    "جون سميث",
			Flight:           "UA901",
			Status:           entity.StatusFoundAwaiting,
			LastUpdate:       now.Add(-time.Hour),
			CurrentLocation:  "مطار دالاس (IAD)",
			Origin:           "JFK",
			Destination:      "LHR",
			NextStep:         "مجدولة على رحلة UA920 إلى لندن (LHR).",
			EstimatedArrival: "28 أكتوبر 2024، 07:00 صباحًا",
			History: [entity.HistorySlots]entity.HistoryEvent{
				{
					Timestamp: now.Add(-time.Hour),
					Status:    "إعادة جدولة",
					Location:  "مطار دالاس (IAD)",
					Details:   "تم تأكيد الحجز على رحلة UA920.",
				},
				{
					Timestamp: now.Add(-2 * time.Hour),
					Status:    "تم استلامها من الجمارك",
					Location:  "مطار دالاس (IAD)",
					Details:   "تم الإفراج عن الحقيبة من قبل جمارك الولايات المتحدة.",
				},
			},
			IsConfirmedByPassenger: true,
		},
	}
}
