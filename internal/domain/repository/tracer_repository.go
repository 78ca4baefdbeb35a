package repository

import (
	"context"

	"baggage-service/internal/domain/entity"
)

// TracerRepository talks to the external global baggage tracer (the
// system of record shared across stations). Read-path transport
// failures degrade to a miss or an error the caller maps to its
// fallback snapshot; they never surface as raw transport faults inside
// the reconciler. Push failures are logged and swallowed by the sync
// policy.
type TracerRepository interface {
	ListAll(ctx context.Context) ([]entity.BaggageRecord, error)

	// FindByQuery resolves an identifier by kind. pir/tag match the PIR
	// exactly (case-insensitive); flight matches exactly, or, for the
	// compound form "<flight>|<lastName>", requires the flight to match
	// and the passenger name to contain the last name; passengerName is
	// a substring match. A miss returns (nil, nil).
	FindByQuery(ctx context.Context, value string, kind entity.LookupKind) (*entity.BaggageRecord, error)

	PushUpdate(ctx context.Context, pir string, patch entity.RecordPatch) error
}
