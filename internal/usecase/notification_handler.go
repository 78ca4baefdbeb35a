package usecase

import (
	"context"

	"baggage-service/internal/domain/entity"
)

// NotificationHandler defines the interface for status-change notification handlers
type NotificationHandler interface {
	// CanHandle determines if this handler can process the given status
	CanHandle(status string) bool

	// Process renders and emits the notification for the change
	Process(ctx context.Context, change *entity.StatusChange) error
}

// StatusRouter routes status changes to the appropriate handler
type StatusRouter interface {
	// Register registers a handler for specific statuses
	Register(handler NotificationHandler)

	// GetHandler returns the appropriate handler for a given status
	GetHandler(status string) NotificationHandler
}
