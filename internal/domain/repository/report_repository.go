package repository

import (
	"context"
	"time"

	"baggage-service/internal/domain/entity"
)

// ReportRepository maintains the card projection list the staff view
// renders from. In remote mode this list is the mirrored view of the
// global tracer; in local mode the reconciler derives cards from the
// record store instead and this list only backs consistency reads.
type ReportRepository interface {
	GetAll(ctx context.Context) ([]entity.BaggageReport, error)

	// FindByPIR matches case-insensitively and returns
	// entity.ErrNotFound on a miss.
	FindByPIR(ctx context.Context, pir string) (*entity.BaggageReport, error)

	// ApplyStatusChange updates status and timestamp of the report with
	// the given PIR in place. status == "" keeps the existing status.
	// When no report exists, seed is inserted instead (covers records
	// whose only representative so far is a tracer push).
	ApplyStatusChange(ctx context.Context, pir, status string, ts time.Time, seed entity.BaggageReport) error

	// ApplyCreation prepends a freshly derived projection.
	ApplyCreation(ctx context.Context, rep entity.BaggageReport) error

	// Replace swaps the whole list, used by the one-time full resync
	// after switching to remote mode.
	Replace(ctx context.Context, reps []entity.BaggageReport) error

	Count(ctx context.Context) (int, error)
}
