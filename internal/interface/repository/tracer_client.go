package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/pkg/logger"
	"baggage-service/pkg/utils"

	"github.com/google/uuid"
)

// TracerClient talks to the WorldTracer bridge over HTTP. Read-path
// failures are returned as errors the reconciler maps onto its local
// fallback; they never carry transport details into the passenger flow.
type TracerClient struct {
	logger      logger.Logger
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	stationCode string
	agentID     string
	airlineCode string
}

// TracerClientConfig carries the bridge settings from the config layer.
type TracerClientConfig struct {
	BaseURL     string
	APIKey      string
	StationCode string
	AgentID     string
	AirlineCode string
	Timeout     time.Duration
}

// NewTracerClient creates a new WorldTracer bridge client. httpClient
// may be nil; pass an OAuth-wrapped client to use bearer tokens instead
// of the static API key.
func NewTracerClient(cfg TracerClientConfig, httpClient *http.Client, logger logger.Logger) repository.TracerRepository {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &TracerClient{
		logger:      logger,
		httpClient:  httpClient,
		baseURL:     cfg.BaseURL,
		apiKey:      cfg.APIKey,
		stationCode: cfg.StationCode,
		agentID:     cfg.AgentID,
		airlineCode: cfg.AirlineCode,
	}
}

// ListAll fetches every active report from the bridge
func (c *TracerClient) ListAll(ctx context.Context) ([]entity.BaggageRecord, error) {
	var records []wireRecord
	if err := c.do(ctx, http.MethodGet, "/reports/active", nil, &records); err != nil {
		return nil, fmt.Errorf("tracer list failed: %w", err)
	}

	out := make([]entity.BaggageRecord, len(records))
	for i := range records {
		out[i] = records[i].toEntity()
	}
	return out, nil
}

// FindByQuery resolves an identifier by kind. A miss returns (nil, nil).
func (c *TracerClient) FindByQuery(ctx context.Context, value string, kind entity.LookupKind) (*entity.BaggageRecord, error) {
	path := fmt.Sprintf("/search?type=%s&q=%s", url.QueryEscape(string(kind)), url.QueryEscape(value))

	var records []wireRecord
	if err := c.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, fmt.Errorf("tracer search failed: %w", err)
	}

	// The bridge returns candidates; apply the exact lookup semantics
	// locally so local and remote modes behave identically.
	candidates := make([]entity.BaggageRecord, len(records))
	for i := range records {
		candidates[i] = records[i].toEntity()
	}
	if match := entity.MatchLookup(candidates, value, kind); match != nil {
		return match, nil
	}
	return nil, nil
}

// PushUpdate forwards a partial update to the bridge
func (c *TracerClient) PushUpdate(ctx context.Context, pir string, patch entity.RecordPatch) error {
	key := utils.NormalizePIR(pir)
	body := patchToWire(patch)

	if err := c.do(ctx, http.MethodPatch, "/reports/"+url.PathEscape(key), body, nil); err != nil {
		return fmt.Errorf("tracer push failed for %s: %w", key, err)
	}

	c.logger.Info("Tracer sync completed", "pir", key)
	return nil
}

func (c *TracerClient) do(ctx context.Context, method, path string, payload, out interface{}) error {
	var body *bytes.Buffer
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
	req.Header.Set("X-SGS-Station", c.stationCode)
	req.Header.Set("X-SGS-Agent-ID", c.agentID)
	req.Header.Set("X-Airline-Code", c.airlineCode)
	req.Header.Set("X-Request-ID", uuid.NewString())
	req.Header.Set("X-Timestamp", time.Now().UTC().Format(time.RFC3339))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("tracer bridge returned status %d: %v", resp.StatusCode, errorBody)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// wireRecord is the bridge document. IsConfirmedByPassenger arrives as
// a bool or the literals "TRUE"/"FALSE" depending on the upstream
// station; it is normalized here, at the boundary.
type wireRecord struct {
	PIR                    string               `json:"pir"`
	PassengerName          string               `json:"passengerName"`
	Flight                 string               `json:"flight"`
	Origin                 string               `json:"origin,omitempty"`
	Destination            string               `json:"destination,omitempty"`
	Status                 string               `json:"status"`
	LastUpdate             time.Time            `json:"lastUpdate"`
	CurrentLocation        string               `json:"currentLocation"`
	NextStep               string               `json:"nextStep"`
	EstimatedArrival       string               `json:"estimatedArrival"`
	History1               *entity.HistoryEvent `json:"history1,omitempty"`
	History2               *entity.HistoryEvent `json:"history2,omitempty"`
	History3               *entity.HistoryEvent `json:"history3,omitempty"`
	BaggagePhoto           string               `json:"baggagePhoto,omitempty"`
	BaggagePhoto2          string               `json:"baggagePhoto2,omitempty"`
	PassengerPhoto         string               `json:"passengerPhoto,omitempty"`
	IsConfirmedByPassenger json.RawMessage      `json:"isConfirmedByPassenger,omitempty"`
	AiFeatures             *entity.AiFeatures   `json:"aiFeatures,omitempty"`
}

func (w wireRecord) toEntity() entity.BaggageRecord {
	rec := entity.BaggageRecord{
		PIR:              utils.NormalizePIR(w.PIR),
		PassengerName:    w.PassengerName,
		Flight:           w.Flight,
		Origin:           w.Origin,
		Destination:      w.Destination,
		Status:           w.Status,
		LastUpdate:       w.LastUpdate,
		CurrentLocation:  w.CurrentLocation,
		NextStep:         w.NextStep,
		EstimatedArrival: w.EstimatedArrival,
		BaggagePhoto:     w.BaggagePhoto,
		BaggagePhoto2:    w.BaggagePhoto2,
		PassengerPhoto:   w.PassengerPhoto,
		AiFeatures:       w.AiFeatures,
	}
	for i, ev := range []*entity.HistoryEvent{w.History1, w.History2, w.History3} {
		if ev != nil {
			rec.History[i] = *ev
		}
	}
	rec.IsConfirmedByPassenger = parseWireConfirmed(w.IsConfirmedByPassenger)
	return rec
}

func parseWireConfirmed(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return entity.ParseConfirmed(s)
	}
	return false
}

// wirePatch mirrors wireRecord with optional fields for PATCH bodies.
type wirePatch struct {
	PassengerName          *string              `json:"passengerName,omitempty"`
	Flight                 *string              `json:"flight,omitempty"`
	Origin                 *string              `json:"origin,omitempty"`
	Destination            *string              `json:"destination,omitempty"`
	Status                 *string              `json:"status,omitempty"`
	LastUpdate             *time.Time           `json:"lastUpdate,omitempty"`
	CurrentLocation        *string              `json:"currentLocation,omitempty"`
	NextStep               *string              `json:"nextStep,omitempty"`
	EstimatedArrival       *string              `json:"estimatedArrival,omitempty"`
	History1               *entity.HistoryEvent `json:"history1,omitempty"`
	History2               *entity.HistoryEvent `json:"history2,omitempty"`
	History3               *entity.HistoryEvent `json:"history3,omitempty"`
	BaggagePhoto           *string              `json:"baggagePhoto,omitempty"`
	BaggagePhoto2          *string              `json:"baggagePhoto2,omitempty"`
	PassengerPhoto         *string              `json:"passengerPhoto,omitempty"`
	IsConfirmedByPassenger *bool                `json:"isConfirmedByPassenger,omitempty"`
	AiFeatures             *entity.AiFeatures   `json:"aiFeatures,omitempty"`
}

func patchToWire(p entity.RecordPatch) wirePatch {
	return wirePatch{
		PassengerName:          p.PassengerName,
		Flight:                 p.Flight,
		Origin:                 p.Origin,
		Destination:            p.Destination,
		Status:                 p.Status,
		LastUpdate:             p.LastUpdate,
		CurrentLocation:        p.CurrentLocation,
		NextStep:               p.NextStep,
		EstimatedArrival:       p.EstimatedArrival,
		History1:               p.History[0],
		History2:               p.History[1],
		History3:               p.History[2],
		BaggagePhoto:           p.BaggagePhoto,
		BaggagePhoto2:          p.BaggagePhoto2,
		PassengerPhoto:         p.PassengerPhoto,
		IsConfirmedByPassenger: p.IsConfirmedByPassenger,
		AiFeatures:             p.AiFeatures,
	}
}
