// Package httpapi exposes the staff and passenger operations over REST.
package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"baggage-service/internal/domain/entity"
	"baggage-service/internal/domain/repository"
	"baggage-service/internal/usecase"
	"baggage-service/pkg/logger"
)

// Handler wires the service operations into gin routes.
type Handler struct {
	reconciler *usecase.Reconciler
	resolver   *usecase.LookupResolver
	tickets    *usecase.TicketService
	matcher    repository.MatcherRepository
	audit      repository.AuditRepository
	logger     logger.Logger
}

// NewHandler creates the API handler. matcher may be nil; the matching
// endpoints then answer 503.
func NewHandler(
	reconciler *usecase.Reconciler,
	resolver *usecase.LookupResolver,
	tickets *usecase.TicketService,
	matcher repository.MatcherRepository,
	audit repository.AuditRepository,
	logger logger.Logger,
) *Handler {
	return &Handler{
		reconciler: reconciler,
		resolver:   resolver,
		tickets:    tickets,
		matcher:    matcher,
		audit:      audit,
		logger:     logger,
	}
}

// RegisterRoutes mounts all API routes on the engine.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		api.GET("/reports", h.listReports)
		api.GET("/records", h.listRecords)
		api.GET("/records/overdue", h.listOverdue)
		api.GET("/records/:pir", h.getRecord)
		api.PATCH("/records/:pir", h.patchRecord)
		api.POST("/records/:pir/confirm", h.confirmOwnership)
		api.POST("/records/:pir/delivery", h.completeDelivery)
		api.POST("/tickets", h.createTicket)
		api.POST("/found-bags", h.registerFoundBag)
		api.POST("/lookup", h.lookup)
		api.PUT("/source-mode", h.setSourceMode)
		api.POST("/match/description", h.matchByDescription)
		api.POST("/match/compare", h.compareImages)
		api.GET("/audit", h.listAudit)
	}
}

func (h *Handler) listReports(c *gin.Context) {
	reports, err := h.reconciler.Reports(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) listRecords(c *gin.Context) {
	records, err := h.reconciler.Records(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) getRecord(c *gin.Context) {
	rec, err := h.reconciler.FindRecordByPIR(c.Request.Context(), c.Param("pir"))
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rec)
}

// patchRecordRequest mirrors RecordPatch with JSON-friendly fields.
// Absent fields leave the record untouched.
type patchRecordRequest struct {
	PassengerName          *string              `json:"passengerName"`
	Flight                 *string              `json:"flight"`
	Origin                 *string              `json:"origin"`
	Destination            *string              `json:"destination"`
	Status                 *string              `json:"status"`
	CurrentLocation        *string              `json:"currentLocation"`
	NextStep               *string              `json:"nextStep"`
	EstimatedArrival       *string              `json:"estimatedArrival"`
	History1               *entity.HistoryEvent `json:"history1"`
	History2               *entity.HistoryEvent `json:"history2"`
	History3               *entity.HistoryEvent `json:"history3"`
	BaggagePhoto           *string              `json:"baggagePhoto"`
	BaggagePhoto2          *string              `json:"baggagePhoto2"`
	PassengerPhoto         *string              `json:"passengerPhoto"`
	IsConfirmedByPassenger *bool                `json:"isConfirmedByPassenger"`
	AiFeatures             *entity.AiFeatures   `json:"aiFeatures"`
}

func (h *Handler) patchRecord(c *gin.Context) {
	var req patchRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := entity.RecordPatch{
		PassengerName:          req.PassengerName,
		Flight:                 req.Flight,
		Origin:                 req.Origin,
		Destination:            req.Destination,
		Status:                 req.Status,
		CurrentLocation:        req.CurrentLocation,
		NextStep:               req.NextStep,
		EstimatedArrival:       req.EstimatedArrival,
		History:                [entity.HistorySlots]*entity.HistoryEvent{req.History1, req.History2, req.History3},
		BaggagePhoto:           req.BaggagePhoto,
		BaggagePhoto2:          req.BaggagePhoto2,
		PassengerPhoto:         req.PassengerPhoto,
		IsConfirmedByPassenger: req.IsConfirmedByPassenger,
		AiFeatures:             req.AiFeatures,
	}

	if err := h.reconciler.UpdateRecord(c.Request.Context(), c.Param("pir"), patch); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) confirmOwnership(c *gin.Context) {
	if err := h.tickets.ConfirmOwnership(c.Request.Context(), c.Param("pir")); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) completeDelivery(c *gin.Context) {
	var d usecase.DeliveryDetails
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.tickets.CompleteDelivery(c.Request.Context(), c.Param("pir"), d); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) createTicket(c *gin.Context) {
	var in usecase.CreateTicketInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rec, err := h.tickets.CreateTicket(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) registerFoundBag(c *gin.Context) {
	var in usecase.FoundBagInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// When the matcher is available and no features were supplied,
	// derive them from the submitted photos.
	if in.AiFeatures == nil && h.matcher != nil {
		refs := []string{in.Photo1}
		if in.Photo2 != "" {
			refs = append(refs, in.Photo2)
		}
		features, name, err := h.matcher.AnalyzeFoundPhotos(c.Request.Context(), refs)
		if err != nil {
			h.logger.Warn("Photo analysis failed, registering without features", "error", err)
		} else {
			in.AiFeatures = features
			if in.PassengerName == "" {
				in.PassengerName = name
			}
		}
	}

	rec, err := h.tickets.RegisterFoundBag(c.Request.Context(), in)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

type lookupRequest struct {
	Value string `json:"value" binding:"required"`
	Kind  string `json:"kind" binding:"required"`
}

func (h *Handler) lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := h.resolver.Resolve(c.Request.Context(), req.Value, entity.LookupKind(req.Kind))
	c.JSON(http.StatusOK, gin.H{
		"record":   result.Record,
		"message":  result.Message,
		"fallback": result.Fallback,
	})
}

type sourceModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

func (h *Handler) setSourceMode(c *gin.Context) {
	var req sourceModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.reconciler.SetSourceMode(c.Request.Context(), entity.ParseSourceMode(req.Mode)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type matchDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

func (h *Handler) matchByDescription(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matching service not configured"})
		return
	}

	var req matchDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	records, err := h.reconciler.Records(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var candidates []entity.BaggageRecord
	for _, rec := range records {
		if rec.Status == entity.StatusFoundAwaiting {
			candidates = append(candidates, rec)
		}
	}

	matches, err := h.matcher.MatchByDescription(c.Request.Context(), req.Description, candidates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if matches == nil {
		matches = []entity.BaggageRecord{}
	}
	c.JSON(http.StatusOK, matches)
}

type compareImagesRequest struct {
	RefA string `json:"refA" binding:"required"`
	RefB string `json:"refB" binding:"required"`
}

func (h *Handler) compareImages(c *gin.Context) {
	if h.matcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "matching service not configured"})
		return
	}

	var req compareImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	verdict, err := h.matcher.CompareImages(c.Request.Context(), req.RefA, req.RefB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"verdict": verdict})
}

func (h *Handler) listOverdue(c *gin.Context) {
	hours := 24
	if v := c.Query("hours"); v != "" {
		if parsed, err := time.ParseDuration(v + "h"); err == nil {
			hours = int(parsed.Hours())
		}
	}
	records, err := h.tickets.OverdueRecords(c.Request.Context(), time.Duration(hours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []entity.BaggageRecord{}
	}
	c.JSON(http.StatusOK, records)
}

func (h *Handler) listAudit(c *gin.Context) {
	entries, err := h.audit.Recent(c.Request.Context(), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// writeError maps domain errors onto HTTP statuses.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, entity.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	case errors.Is(err, entity.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
