// internal/domain/entity/audit.go
package entity

import "time"

// Audit categories
const (
	AuditSecurity  = "Security"
	AuditData      = "Data"
	AuditSystem    = "System"
	AuditOperation = "Operation"
)

// Audit outcome statuses
const (
	AuditSuccess = "Success"
	AuditFailed  = "Failed"
	AuditInfo    = "Info"
)

// AuditEntry is a single fire-and-forget audit event. Sinks keep a
// bounded history and prune the oldest entries past their cap.
type AuditEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	User      string    `json:"user"`
	Action    string    `json:"action"`
	Category  string    `json:"category"`
	Details   string    `json:"details"`
	Status    string    `json:"status"`
	IP        string    `json:"ip,omitempty"`
}
