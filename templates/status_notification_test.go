package templates

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"baggage-service/internal/domain/entity"
	"baggage-service/pkg/logger"
)

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "عاجل", StatusLabel(entity.StatusUrgent))
	assert.Equal(t, "تم التسليم", StatusLabel(entity.StatusDelivered))
	assert.Equal(t, "SomethingElse", StatusLabel("SomethingElse"))
}

func TestDeliveredHandlerCanHandle(t *testing.T) {
	h := NewDeliveredNotificationHandler(logger.NewNop())
	assert.True(t, h.CanHandle(entity.StatusDelivered))
	assert.False(t, h.CanHandle(entity.StatusUrgent))
}

func TestStatusChangeHandlerIsCatchAll(t *testing.T) {
	h := NewStatusChangeHandler(logger.NewNop())
	assert.True(t, h.CanHandle(entity.StatusUrgent))
	assert.True(t, h.CanHandle("SomethingElse"))
	assert.False(t, h.CanHandle(""))
}

func TestHandlersProcess(t *testing.T) {
	change := &entity.StatusChange{
		PIR:       "JEDSV11111",
		OldStatus: entity.StatusOutForDelivery,
		NewStatus: entity.StatusDelivered,
		Timestamp: time.Now(),
	}

	require.NoError(t, NewDeliveredNotificationHandler(logger.NewNop()).Process(context.Background(), change))
	require.NoError(t, NewStatusChangeHandler(logger.NewNop()).Process(context.Background(), change))
}
