// Package ai adapts Google's Gemini API to the matcher capabilities
// used by the passenger self-service and found-baggage flows.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
)

// verdictUnavailable is returned by CompareImages when the model call
// fails; callers render it as a service apology, not an error.
const verdictUnavailable = "MATCH_SERVICE_UNAVAILABLE"

// GeminiMatcher implements the visual and descriptive matching
// capabilities on top of the Gemini generative models.
type GeminiMatcher struct {
	client *genai.Client
	model  string
	photos repository.PhotoRepository
	log    logger.Logger
}

// NewGeminiMatcher creates a Gemini-backed matcher
func NewGeminiMatcher(apiKey, model string, photos repository.PhotoRepository, log logger.Logger) (*GeminiMatcher, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiMatcher{
		client: client,
		model:  model,
		photos: photos,
		log:    log,
	}, nil
}

var _ repository.MatcherRepository = (*GeminiMatcher)(nil)

// matchCandidate is the trimmed view of a record offered to the model.
type matchCandidate struct {
	PIR      string             `json:"pir"`
	Features *entity.AiFeatures `json:"features,omitempty"`
	Details  string             `json:"details,omitempty"`
}

// MatchByDescription asks the model which candidates plausibly match a
// free-text description. Any model or parse failure degrades to an
// empty result set.
func (m *GeminiMatcher) MatchByDescription(ctx context.Context, description string, candidates []entity.BaggageRecord) ([]entity.BaggageRecord, error) {
	if strings.TrimSpace(description) == "" || len(candidates) == 0 {
		return nil, nil
	}

	shortlist := make([]matchCandidate, 0, len(candidates))
	for i := range candidates {
		c := matchCandidate{PIR: candidates[i].PIR, Features: candidates[i].AiFeatures}
		for _, ev := range candidates[i].History {
			if !ev.IsEmpty() {
				c.Details = ev.Details
				break
			}
		}
		shortlist = append(shortlist, c)
	}

	listJSON, err := json.Marshal(shortlist)
	if err != nil {
		return nil, fmt.Errorf("failed to encode candidates: %w", err)
	}

	prompt := fmt.Sprintf(
		"Match description %q from this list of unclaimed bags: %s. Return ONLY a JSON array of PIR strings for the plausible matches.",
		description, string(listJSON),
	)

	resp, err := m.client.Models.GenerateContent(ctx, m.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0),
		},
	)
	if err != nil {
		m.log.Warn("Description match failed, returning no matches", "error", err)
		return nil, nil
	}

	var pirs []string
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &pirs); err != nil {
		m.log.Warn("Description match returned unparseable output", "error", err)
		return nil, nil
	}

	wanted := make(map[string]bool, len(pirs))
	for _, pir := range pirs {
		wanted[strings.ToUpper(strings.TrimSpace(pir))] = true
	}

	var matched []entity.BaggageRecord
	for _, rec := range candidates {
		if wanted[rec.PIR] {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// CompareImages submits two photo references for a same-bag verdict.
// The caller only inspects the YES/NO prefix of the answer.
func (m *GeminiMatcher) CompareImages(ctx context.Context, refA, refB string) (string, error) {
	partA, err := m.inlinePart(refA)
	if err != nil {
		return verdictUnavailable, nil
	}
	partB, err := m.inlinePart(refB)
	if err != nil {
		return verdictUnavailable, nil
	}

	parts := []*genai.Part{
		genai.NewPartFromText("Security Analysis: Do these two photos show the same bag? Answer strictly YES or NO, then one short sentence of reasoning."),
		partA,
		partB,
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		nil,
	)
	if err != nil {
		m.log.Warn("Image comparison failed", "error", err)
		return verdictUnavailable, nil
	}

	verdict := strings.TrimSpace(resp.Text())
	if verdict == "" {
		return "NO_MATCH", nil
	}
	return verdict, nil
}

// foundAnalysis is the JSON shape the model is asked to produce for
// found-bag photos.
type foundAnalysis struct {
	Brand            string `json:"brand"`
	Color            string `json:"color"`
	Size             string `json:"size"`
	Type             string `json:"type"`
	DistinctiveMarks string `json:"distinctiveMarks"`
	PassengerName    string `json:"passengerName"`
}

// AnalyzeFoundPhotos extracts visual features from found-bag photos and
// reads the passenger name off a legible tag when one is visible.
func (m *GeminiMatcher) AnalyzeFoundPhotos(ctx context.Context, refs []string) (*entity.AiFeatures, string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(`Analyze this baggage visually. Respond with JSON only: {"brand","color","size","type","distinctiveMarks","passengerName"}. Size is one of Small, Medium, Large, Extra Large. passengerName is the name on the tag if legible, otherwise empty.`),
	}
	for _, ref := range refs {
		part, err := m.inlinePart(ref)
		if err != nil {
			continue
		}
		parts = append(parts, part)
	}
	if len(parts) == 1 {
		return nil, "", fmt.Errorf("no usable photos provided")
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model,
		[]*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)},
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			Temperature:      genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return nil, "", fmt.Errorf("photo analysis failed: %w", err)
	}

	var analysis foundAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(resp.Text())), &analysis); err != nil {
		return nil, "", fmt.Errorf("photo analysis returned unparseable output: %w", err)
	}

	features := &entity.AiFeatures{
		Brand:            analysis.Brand,
		Color:            analysis.Color,
		Size:             analysis.Size,
		Type:             analysis.Type,
		DistinctiveMarks: analysis.DistinctiveMarks,
	}
	return features, strings.TrimSpace(analysis.PassengerName), nil
}

// inlinePart decodes a data-URI photo reference into an inline part.
func (m *GeminiMatcher) inlinePart(ref string) (*genai.Part, error) {
	data, mimeType, err := m.photos.ReferenceToBlob(ref)
	if err != nil {
		return nil, err
	}
	return genai.NewPartFromBytes(data, mimeType), nil
}

// cleanJSON strips the markdown code fences some models wrap around
// JSON responses.
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
