package repository

import (
	"context"
	"sync"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormAuditRepository implements the AuditRepository interface on
// Postgres with a bounded retention: once the table grows past the cap
// the oldest rows are pruned.
type GormAuditRepository struct {
	db  *gorm.DB
	cap int
}

// NewGormAuditRepository creates a new GORM audit repository
func NewGormAuditRepository(db *gorm.DB, cap int) repository.AuditRepository {
	db.AutoMigrate(&AuditLogs{})
	return &GormAuditRepository{
		db:  db,
		cap: cap,
	}
}

// AuditLogs GORM model for database mapping
type AuditLogs struct {
	ID        uint      `gorm:"primaryKey"`
	EntryID   string    `gorm:"column:entry_id;unique"`
	Timestamp time.Time `gorm:"column:timestamp"`
	UserName  string    `gorm:"column:user_name"`
	Action    string    `gorm:"column:action"`
	Category  string    `gorm:"column:category"`
	Details   string    `gorm:"column:details"`
	Status    string    `gorm:"column:status"`
	IP        string    `gorm:"column:ip"`
	CreatedAt time.Time
}

// TableName overrides the default table name
func (AuditLogs) TableName() string {
	return "audit_logs"
}

// Record appends an audit entry and prunes past the retention cap
func (r *GormAuditRepository) Record(ctx context.Context, entry entity.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	row := AuditLogs{
		EntryID:   entry.ID,
		Timestamp: entry.Timestamp,
		UserName:  entry.User,
		Action:    entry.Action,
		Category:  entry.Category,
		Details:   entry.Details,
		Status:    entry.Status,
		IP:        entry.IP,
	}
	if result := r.db.WithContext(ctx).Create(&row); result.Error != nil {
		return result.Error
	}

	var count int64
	if result := r.db.WithContext(ctx).Model(&AuditLogs{}).Count(&count); result.Error != nil {
		return result.Error
	}
	if excess := count - int64(r.cap); excess > 0 {
		return r.db.WithContext(ctx).Exec(
			"DELETE FROM audit_logs WHERE id IN (SELECT id FROM audit_logs ORDER BY id ASC LIMIT ?)",
			excess,
		).Error
	}
	return nil
}

// Recent returns the newest entries, newest first
func (r *GormAuditRepository) Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	var rows []AuditLogs
	result := r.db.WithContext(ctx).Order("id desc").Limit(limit).Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	entries := make([]entity.AuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = entity.AuditEntry{
			ID:        row.EntryID,
			Timestamp: row.Timestamp,
			User:      row.UserName,
			Action:    row.Action,
			Category:  row.Category,
			Details:   row.Details,
			Status:    row.Status,
			IP:        row.IP,
		}
	}
	return entries, nil
}

// MemoryAuditRepository is the bounded in-memory sink used when no
// Postgres DSN is configured.
type MemoryAuditRepository struct {
	mu      sync.RWMutex
	entries []entity.AuditEntry
	cap     int
}

// NewMemoryAuditRepository creates an in-memory audit sink
func NewMemoryAuditRepository(cap int) *MemoryAuditRepository {
	return &MemoryAuditRepository{cap: cap}
}

var _ repository.AuditRepository = (*MemoryAuditRepository)(nil)

// Record appends an entry, evicting the oldest past the cap
func (r *MemoryAuditRepository) Record(ctx context.Context, entry entity.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	if len(r.entries) > r.cap {
		r.entries = r.entries[len(r.entries)-r.cap:]
	}
	return nil
}

// Recent returns the newest entries, newest first
func (r *MemoryAuditRepository) Recent(ctx context.Context, limit int) ([]entity.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.entries)
	if limit > n {
		limit = n
	}
	out := make([]entity.AuditEntry, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
