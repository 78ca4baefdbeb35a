// internal/domain/entity/baggage_record.go
package entity

import (
	"strings"
	"time"
)

// Baggage record statuses. The set is closed; staff UIs key colors and
// eligibility rules off these exact strings.
const (
	StatusUrgent           = "Urgent"
	StatusInProgress       = "In Progress"
	StatusResolved         = "Resolved"
	StatusNeedsStaffReview = "Needs Staff Review"
	StatusOutForDelivery   = "Out for Delivery"
	StatusDelivered        = "Delivered"
	StatusFoundAwaiting    = "Found - Awaiting Claim"
)

// HistorySlots is the fixed number of history entries carried by a record.
// Writers overwrite slots explicitly; nothing shifts.
const HistorySlots = 3

// HistoryEvent is a single entry in a record's fixed-slot history.
// A zero Timestamp marks an empty slot.
type HistoryEvent struct {
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
	Status    string    `bson:"status" json:"status"`
	Location  string    `bson:"location" json:"location"`
	Details   string    `bson:"details" json:"details"`
}

// IsEmpty reports whether the slot has never been written.
func (e HistoryEvent) IsEmpty() bool {
	return e.Timestamp.IsZero() && e.Status == "" && e.Location == "" && e.Details == ""
}

// AiFeatures holds visual attributes extracted from baggage photos.
// Display and matching only, never required.
type AiFeatures struct {
	Brand            string `bson:"brand,omitempty" json:"brand,omitempty"`
	Color            string `bson:"color,omitempty" json:"color,omitempty"`
	Size             string `bson:"size,omitempty" json:"size,omitempty"` // Small | Medium | Large | Extra Large
	Type             string `bson:"type,omitempty" json:"type,omitempty"`
	DistinctiveMarks string `bson:"distinctiveMarks,omitempty" json:"distinctiveMarks,omitempty"`
}

// BaggageRecord is the canonical baggage entity, keyed by PIR.
// PIR is stored upper-cased; lookups are case-insensitive and trimmed.
type BaggageRecord struct {
	PIR                    string         `bson:"pir" json:"pir"`
	PassengerName          string         `bson:"passengerName" json:"passengerName"`
	Flight                 string         `bson:"flight" json:"flight"`
	Origin                 string         `bson:"origin,omitempty" json:"origin,omitempty"`
	Destination            string         `bson:"destination,omitempty" json:"destination,omitempty"`
	Status                 string         `bson:"status" json:"status"`
	LastUpdate             time.Time      `bson:"lastUpdate" json:"lastUpdate"`
	CurrentLocation        string         `bson:"currentLocation" json:"currentLocation"`
	NextStep               string         `bson:"nextStep" json:"nextStep"`
	EstimatedArrival       string         `bson:"estimatedArrival" json:"estimatedArrival"`
	History                [HistorySlots]HistoryEvent `bson:"history" json:"history"`
	BaggagePhoto           string         `bson:"baggagePhoto,omitempty" json:"baggagePhoto,omitempty"`
	BaggagePhoto2          string         `bson:"baggagePhoto2,omitempty" json:"baggagePhoto2,omitempty"`
	PassengerPhoto         string         `bson:"passengerPhoto,omitempty" json:"passengerPhoto,omitempty"`
	IsConfirmedByPassenger bool           `bson:"isConfirmedByPassenger" json:"isConfirmedByPassenger"`
	AiFeatures             *AiFeatures    `bson:"aiFeatures,omitempty" json:"aiFeatures,omitempty"`
}

// minPhotoRefLen is the shortest string treated as a usable photo
// reference when gating AI prompts.
const minPhotoRefLen = 10

// HasBaggagePhoto reports whether the record carries a usable staff photo.
func (r *BaggageRecord) HasBaggagePhoto() bool {
	return len(r.BaggagePhoto) > minPhotoRefLen
}

// HasPassengerPhoto reports whether the passenger uploaded a usable photo.
func (r *BaggageRecord) HasPassengerPhoto() bool {
	return len(r.PassengerPhoto) > minPhotoRefLen
}

// ParseConfirmed normalizes the passenger-confirmation flag. Upstream
// systems deliver it as a bool or as the literals "TRUE"/"FALSE"; the
// core model only ever carries a bool.
func ParseConfirmed(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(strings.TrimSpace(t), "TRUE")
	default:
		return false
	}
}
