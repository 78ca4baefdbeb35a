package repository

import (
	"context"

	"baggage-service/internal/domain/entity"
)

// MatcherRepository wraps the generative-AI capabilities the passenger
// and staff flows consume. Implementations apply their own request
// timeouts; callers treat failures as an apology string, never as a
// blocking error.
type MatcherRepository interface {
	// MatchByDescription returns the subset of candidates plausibly
	// matching a free-text baggage description. May be empty.
	MatchByDescription(ctx context.Context, description string, candidates []entity.BaggageRecord) ([]entity.BaggageRecord, error)

	// CompareImages returns a free-text verdict for two photo
	// references. Callers only inspect the "MATCH"/"YES" prefix
	// convention.
	CompareImages(ctx context.Context, refA, refB string) (string, error)

	// AnalyzeFoundPhotos extracts visual features (and a passenger name
	// when a tag is legible) from found-bag photos.
	AnalyzeFoundPhotos(ctx context.Context, refs []string) (*entity.AiFeatures, string, error)
}
