package usecase

import (
	"context"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/metrics"
)

// Passenger-facing lookup messages.
const (
	msgStoreEmpty = "عفواً، قاعدة بيانات الأمتعة غير متاحة حالياً."
	msgNotFound   = "عفواً، لم نجد بلاغاً مفعلاً للبيانات المذكورة."
)

// LookupResolver resolves a raw identifier to at most one record using
// the mode-appropriate source. A miss is a normal outcome, answered
// with a message and the browse list of found bags awaiting claim — the
// passenger flow never dead-ends.
type LookupResolver struct {
	reconciler *Reconciler
	tracer     repository.TracerRepository
	logger     logger.Logger
	metrics    *metrics.Metrics
}

// NewLookupResolver creates a resolver bound to the engine's stores.
func NewLookupResolver(rec *Reconciler, tracer repository.TracerRepository, log logger.Logger, m *metrics.Metrics) *LookupResolver {
	return &LookupResolver{reconciler: rec, tracer: tracer, logger: log, metrics: m}
}

// Resolve looks up value by kind. Exactly one of Record / Message is
// set on the result; it never returns a transport error to the caller.
func (l *LookupResolver) Resolve(ctx context.Context, value string, kind entity.LookupKind) entity.LookupResult {
	var record *entity.BaggageRecord
	var message string

	if l.reconciler.SourceMode() == entity.SourceLocal {
		records, err := l.reconciler.Records(ctx)
		if err != nil || len(records) == 0 {
			message = msgStoreEmpty
		} else {
			record = entity.MatchLookup(records, value, kind)
		}
	} else {
		found, err := l.tracer.FindByQuery(ctx, value, kind)
		if err != nil {
			// Remote misbehaviour degrades to a miss.
			l.logger.Warn("Tracer lookup failed, degrading to not-found", "kind", kind, "error", err)
		} else {
			record = found
		}
	}

	if record == nil && message == "" {
		message = msgNotFound
	}

	if record != nil {
		return entity.LookupResult{Record: record}
	}

	if l.metrics != nil {
		l.metrics.LookupMisses.Inc()
	}
	return entity.LookupResult{
		Message:  message,
		Fallback: l.foundAwaitingClaim(ctx),
	}
}

func (l *LookupResolver) foundAwaitingClaim(ctx context.Context) []entity.BaggageRecord {
	records, err := l.reconciler.Records(ctx)
	if err != nil {
		return nil
	}
	var out []entity.BaggageRecord
	for _, rec := range records {
		if rec.Status == entity.StatusFoundAwaiting {
			out = append(out, rec)
		}
	}
	return out
}
