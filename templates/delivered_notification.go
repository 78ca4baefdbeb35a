package templates

import (
	"context"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
)

const (
	deliveredTitle   = "تم التسليم بنجاح!"
	deliveredMessage = "تم استلام حقيبتك رسمياً. نشكركم لاختيار خدماتنا."
)

// DeliveredNotificationHandler handles final-delivery notifications
type DeliveredNotificationHandler struct {
	logger logger.Logger
}

// NewDeliveredNotificationHandler creates a new delivered notification handler
func NewDeliveredNotificationHandler(logger logger.Logger) *DeliveredNotificationHandler {
	return &DeliveredNotificationHandler{logger: logger}
}

// CanHandle determines if this handler can process the given status
func (h *DeliveredNotificationHandler) CanHandle(status string) bool {
	return status == entity.StatusDelivered
}

// Process emits the delivery-success notification
func (h *DeliveredNotificationHandler) Process(ctx context.Context, change *entity.StatusChange) error {
	n := entity.Notification{
		Title:     deliveredTitle,
		Message:   deliveredMessage,
		Kind:      entity.NotificationSuccess,
		Timestamp: change.Timestamp,
	}

	h.logger.Info("Passenger notification",
		"pir", change.PIR,
		"kind", n.Kind,
		"title", n.Title,
		"message", n.Message)
	return nil
}
