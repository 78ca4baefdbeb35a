// internal/domain/entity/lookup_match.go
package entity

import "strings"

// MatchLookup applies the shared lookup semantics to a record list:
// pir/tag match the PIR exactly (case-insensitive, trimmed); flight
// matches exactly, or, for the compound "<flight>|<lastName>" form,
// requires the flight to match and the passenger name to contain the
// last name; passengerName is a substring match. The first hit wins.
func MatchLookup(records []BaggageRecord, value string, kind LookupKind) *BaggageRecord {
	normalized := strings.ToLower(strings.TrimSpace(value))

	for i := range records {
		rec := &records[i]
		switch kind {
		case LookupPIR, LookupTag:
			if strings.ToLower(strings.TrimSpace(rec.PIR)) == normalized {
				return rec
			}
		case LookupFlight:
			if flight, lastName, ok := splitCompoundFlight(normalized); ok {
				if strings.ToLower(rec.Flight) == flight &&
					strings.Contains(strings.ToLower(rec.PassengerName), lastName) {
					return rec
				}
			} else if strings.ToLower(rec.Flight) == normalized {
				return rec
			}
		case LookupPassengerName:
			if strings.Contains(strings.ToLower(rec.PassengerName), normalized) {
				return rec
			}
		}
	}
	return nil
}

func splitCompoundFlight(query string) (flight, lastName string, ok bool) {
	if !strings.Contains(query, "|") {
		return "", "", false
	}
	parts := strings.SplitN(query, "|", 2)
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
