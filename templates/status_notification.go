package templates

import (
	"context"
	"fmt"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
)

const statusUpdateTitle = "تحديث في حالة الأمتعة"

// StatusChangeHandler handles every remaining status transition
type StatusChangeHandler struct {
	logger logger.Logger
}

// NewStatusChangeHandler creates a new status change handler
func NewStatusChangeHandler(logger logger.Logger) *StatusChangeHandler {
	return &StatusChangeHandler{logger: logger}
}

// CanHandle determines if this handler can process the given status.
// It is the catch-all, so it must register after the specific handlers.
func (h *StatusChangeHandler) CanHandle(status string) bool {
	return status != ""
}

// Process emits the generic status-update notification
func (h *StatusChangeHandler) Process(ctx context.Context, change *entity.StatusChange) error {
	kind := entity.NotificationInfo
	if change.NewStatus == entity.StatusUrgent {
		kind = entity.NotificationUrgent
	}

	n := entity.Notification{
		Title:     statusUpdateTitle,
		Message:   fmt.Sprintf("تغيرت حالة حقيبتك (%s) إلى: %s", change.PIR, StatusLabel(change.NewStatus)),
		Kind:      kind,
		Timestamp: change.Timestamp,
	}

	h.logger.Info("Passenger notification",
		"pir", change.PIR,
		"kind", n.Kind,
		"title", n.Title,
		"message", n.Message)
	return nil
}
