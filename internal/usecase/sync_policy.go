package usecase

import (
	"context"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
)

// SyncPolicy decides how hard the reconciler tries to land an update on
// the global tracer. The core's correctness never depends on the push
// outcome; every policy swallows the final failure.
type SyncPolicy interface {
	Push(ctx context.Context, tracer repository.TracerRepository, pir string, patch entity.RecordPatch) error
}

// NoSyncPolicy drops every push. Used by stations running fully offline.
type NoSyncPolicy struct{}

func (NoSyncPolicy) Push(ctx context.Context, tracer repository.TracerRepository, pir string, patch entity.RecordPatch) error {
	return nil
}

// BestEffortPolicy attempts the push once.
type BestEffortPolicy struct{}

func (BestEffortPolicy) Push(ctx context.Context, tracer repository.TracerRepository, pir string, patch entity.RecordPatch) error {
	return tracer.PushUpdate(ctx, pir, patch)
}

// RetryPolicy attempts the push up to Attempts times with a fixed
// backoff between tries.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
	Logger   logger.Logger
}

func (p RetryPolicy) Push(ctx context.Context, tracer repository.TracerRepository, pir string, patch entity.RecordPatch) error {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for i := 0; i < attempts; i++ {
		if err = tracer.PushUpdate(ctx, pir, patch); err == nil {
			return nil
		}
		if p.Logger != nil {
			p.Logger.Warn("Tracer push attempt failed", "pir", pir, "attempt", i+1, "error", err)
		}
		if i < attempts-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.Backoff):
			}
		}
	}
	return err
}

// NewSyncPolicy maps a config string onto a policy.
func NewSyncPolicy(name string, retries int, backoff time.Duration, log logger.Logger) SyncPolicy {
	switch name {
	case "none":
		return NoSyncPolicy{}
	case "retry":
		return RetryPolicy{Attempts: retries, Backoff: backoff, Logger: log}
	default:
		return BestEffortPolicy{}
	}
}
