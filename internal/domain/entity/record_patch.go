// internal/domain/entity/record_patch.go
package entity

import "time"

// RecordPatch is a partial update to a BaggageRecord. Nil fields are
// left untouched by Upsert. A non-empty PIR allows the store to
// synthesize a record on a miss (insert-on-update for records first
// seen via the global tracer).
type RecordPatch struct {
	PIR                    string
	PassengerName          *string
	Flight                 *string
	Origin                 *string
	Destination            *string
	Status                 *string
	LastUpdate             *time.Time
	CurrentLocation        *string
	NextStep               *string
	EstimatedArrival       *string
	History                [HistorySlots]*HistoryEvent
	BaggagePhoto           *string
	BaggagePhoto2          *string
	PassengerPhoto         *string
	IsConfirmedByPassenger *bool
	AiFeatures             *AiFeatures
}

// Apply merges the patch into rec. LastUpdate is handled by the caller
// (the reconciler resolves one effective timestamp per operation).
func (p RecordPatch) Apply(rec *BaggageRecord) {
	if p.PassengerName != nil {
		rec.PassengerName = *p.PassengerName
	}
	if p.Flight != nil {
		rec.Flight = *p.Flight
	}
	if p.Origin != nil {
		rec.Origin = *p.Origin
	}
	if p.Destination != nil {
		rec.Destination = *p.Destination
	}
	if p.Status != nil {
		rec.Status = *p.Status
	}
	if p.CurrentLocation != nil {
		rec.CurrentLocation = *p.CurrentLocation
	}
	if p.NextStep != nil {
		rec.NextStep = *p.NextStep
	}
	if p.EstimatedArrival != nil {
		rec.EstimatedArrival = *p.EstimatedArrival
	}
	for i, ev := range p.History {
		if ev != nil {
			rec.History[i] = *ev
		}
	}
	if p.BaggagePhoto != nil {
		rec.BaggagePhoto = *p.BaggagePhoto
	}
	if p.BaggagePhoto2 != nil {
		rec.BaggagePhoto2 = *p.BaggagePhoto2
	}
	if p.PassengerPhoto != nil {
		rec.PassengerPhoto = *p.PassengerPhoto
	}
	if p.IsConfirmedByPassenger != nil {
		rec.IsConfirmedByPassenger = *p.IsConfirmedByPassenger
	}
	if p.AiFeatures != nil {
		rec.AiFeatures = p.AiFeatures
	}
}

// Synthesize builds a new record from the patch alone, used when an
// update arrives for a PIR the local store has never seen.
func (p RecordPatch) Synthesize(pir string, ts time.Time) BaggageRecord {
	rec := BaggageRecord{
		PIR:        pir,
		Status:     StatusInProgress,
		LastUpdate: ts,
	}
	p.Apply(&rec)
	rec.LastUpdate = ts
	return rec
}

// PatchFromRecord converts a full record into a patch that rewrites
// every field, carrying the record's own timestamp. Used when importing
// global-tracer state verbatim.
func PatchFromRecord(rec BaggageRecord) RecordPatch {
	p := RecordPatch{
		PIR:                    rec.PIR,
		PassengerName:          ptr(rec.PassengerName),
		Flight:                 ptr(rec.Flight),
		Origin:                 ptr(rec.Origin),
		Destination:            ptr(rec.Destination),
		Status:                 ptr(rec.Status),
		CurrentLocation:        ptr(rec.CurrentLocation),
		NextStep:               ptr(rec.NextStep),
		EstimatedArrival:       ptr(rec.EstimatedArrival),
		IsConfirmedByPassenger: ptr(rec.IsConfirmedByPassenger),
		AiFeatures:             rec.AiFeatures,
	}
	if !rec.LastUpdate.IsZero() {
		p.LastUpdate = ptr(rec.LastUpdate)
	}
	for i := range rec.History {
		if !rec.History[i].IsEmpty() {
			ev := rec.History[i]
			p.History[i] = &ev
		}
	}
	if rec.BaggagePhoto != "" {
		p.BaggagePhoto = ptr(rec.BaggagePhoto)
	}
	if rec.BaggagePhoto2 != "" {
		p.BaggagePhoto2 = ptr(rec.BaggagePhoto2)
	}
	if rec.PassengerPhoto != "" {
		p.PassengerPhoto = ptr(rec.PassengerPhoto)
	}
	return p
}

func ptr[T any](v T) *T {
	return &v
}
