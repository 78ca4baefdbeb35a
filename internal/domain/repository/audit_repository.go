package repository

import (
	"context"

	"baggage-service/internal/domain/entity"
)

// AuditRepository is the fire-and-forget audit sink. Implementations
// keep a bounded history (oldest entries pruned past the cap).
type AuditRepository interface {
	Record(ctx context.Context, entry entity.AuditEntry) error
	Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error)
}
