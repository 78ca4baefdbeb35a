// internal/domain/entity/lookup.go
package entity

// LookupKind selects how a raw identifier is matched against records.
type LookupKind string

const (
	LookupPIR           LookupKind = "pir"
	LookupTag           LookupKind = "tag"
	LookupFlight        LookupKind = "flight"
	LookupPassengerName LookupKind = "passengerName"
)

// LookupResult carries the outcome of a passenger-facing lookup.
// Exactly one of Record / Message is populated. A miss is a normal
// outcome: Fallback holds the "Found - Awaiting Claim" records offered
// for manual browsing so the passenger never dead-ends.
type LookupResult struct {
	Record   *BaggageRecord
	Message  string
	Fallback []BaggageRecord
}
