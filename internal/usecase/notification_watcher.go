package usecase

import (
	"context"
	"fmt"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
)

// NotificationWatcher observes the report projection and dispatches
// status transitions to the registered notification handlers.
type NotificationWatcher struct {
	reconciler *Reconciler
	router     StatusRouter
	logger     logger.Logger
	lastSeen   map[string]string
}

// NewNotificationWatcher creates a new notification watcher
func NewNotificationWatcher(
	reconciler *Reconciler,
	router StatusRouter,
	logger logger.Logger,
) *NotificationWatcher {
	return &NotificationWatcher{
		reconciler: reconciler,
		router:     router,
		logger:     logger,
		lastSeen:   make(map[string]string),
	}
}

// Start runs the watch loop until the context is cancelled
func (w *NotificationWatcher) Start(ctx context.Context, interval time.Duration) {
	w.logger.Info("Starting notification watcher", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Notification watcher stopped")
			return
		case <-ticker.C:
			if err := w.CheckOnce(ctx); err != nil {
				w.logger.Error("Notification check failed", "error", err)
			}
		}
	}
}

// CheckOnce diffs the current projection against the previous pass and
// dispatches one change per transitioned report.
func (w *NotificationWatcher) CheckOnce(ctx context.Context) error {
	reports, err := w.reconciler.Reports(ctx)
	if err != nil {
		return fmt.Errorf("failed to load reports: %w", err)
	}

	for _, report := range reports {
		prev, seen := w.lastSeen[report.PIR]
		w.lastSeen[report.PIR] = report.Status
		if !seen || prev == report.Status {
			continue
		}

		change := &entity.StatusChange{
			PIR:           report.PIR,
			PassengerName: report.PassengerName,
			OldStatus:     prev,
			NewStatus:     report.Status,
			Timestamp:     report.LastUpdate,
		}
		if err := w.Dispatch(ctx, change); err != nil {
			w.logger.Error("Failed to dispatch status change",
				"pir", report.PIR,
				"error", err)
		}
	}
	return nil
}

// Dispatch routes a single status change to its handler
func (w *NotificationWatcher) Dispatch(ctx context.Context, change *entity.StatusChange) error {
	handler := w.router.GetHandler(change.NewStatus)
	if handler == nil {
		w.logger.Debug("No handler found for status change",
			"pir", change.PIR,
			"status", change.NewStatus)
		return nil
	}

	handlerType := fmt.Sprintf("%T", handler)
	w.logger.Debug("Dispatching status change",
		"pir", change.PIR,
		"handler", handlerType,
		"from", change.OldStatus,
		"to", change.NewStatus)

	if err := handler.Process(ctx, change); err != nil {
		return fmt.Errorf("handler %s failed: %w", handlerType, err)
	}
	return nil
}
