package router

import (
	"baggage-service/internal/usecase"
	"baggage-service/pkg/logger"
)

// StatusRouter routes report status changes to notification handlers
type StatusRouter struct {
	handlers []usecase.NotificationHandler
	logger   logger.Logger
}

// NewStatusRouter creates a new status router
func NewStatusRouter(logger logger.Logger) *StatusRouter {
	return &StatusRouter{
		handlers: make([]usecase.NotificationHandler, 0),
		logger:   logger,
	}
}

// Register registers a handler for specific statuses
func (r *StatusRouter) Register(handler usecase.NotificationHandler) {
	r.handlers = append(r.handlers, handler)
	r.logger.Info("Registered handler", "handler", handler)
}

// GetHandler returns the appropriate handler for a given status
func (r *StatusRouter) GetHandler(status string) usecase.NotificationHandler {
	for _, handler := range r.handlers {
		if handler.CanHandle(status) {
			return handler
		}
	}
	return nil
}
