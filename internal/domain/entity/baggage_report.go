// internal/domain/entity/baggage_report.go
package entity

import "time"

// BaggageReport is the lightweight card projection of a BaggageRecord,
// used by the staff list view. Kept in sync with the record store by
// the reconciler; the same PIR (case-insensitive) keys both.
type BaggageReport struct {
	ID            string    `bson:"id" json:"id"`
	PIR           string    `bson:"pir" json:"pir"`
	PassengerName string    `bson:"passengerName" json:"passengerName"`
	Flight        string    `bson:"flight" json:"flight"`
	Status        string    `bson:"status" json:"status"`
	LastUpdate    time.Time `bson:"lastUpdate" json:"lastUpdate"`
}

// Defaults for projections synthesized from sparse updates.
const (
	UnknownPassenger = "Unknown"
	UnknownFlight    = "N/A"
)

// ProjectReport derives the card projection from a full record.
func ProjectReport(rec BaggageRecord) BaggageReport {
	return BaggageReport{
		ID:            rec.PIR,
		PIR:           rec.PIR,
		PassengerName: rec.PassengerName,
		Flight:        rec.Flight,
		Status:        rec.Status,
		LastUpdate:    rec.LastUpdate,
	}
}
