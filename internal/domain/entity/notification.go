package entity

import "time"

// Notification kinds, mirroring the passenger-facing toast types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationUrgent  = "urgent"
)

// StatusChange describes one observed report transition.
type StatusChange struct {
	PIR           string
	PassengerName string
	OldStatus     string
	NewStatus     string
	Timestamp     time.Time
}

// Notification is a rendered passenger-facing message.
type Notification struct {
	Title     string
	Message   string
	Kind      string
	Timestamp time.Time
}
