package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
	"github.com/unifiedhq/usp-api/pkg/response"
)

type eventService interface {
	Schedule(ctx context.Context, req dto.ScheduleEventRequest) (*models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	UpdateStatus(ctx context.Context, id string, req dto.UpdateEventStatusRequest) (*models.Event, error)
	List(ctx context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error)
}

// EventHandler exposes REST endpoints for scheduled events.
type EventHandler struct {
	service eventService
}

// NewEventHandler constructs the handler.
func NewEventHandler(service eventService) *EventHandler {
	return &EventHandler{service: service}
}

// Schedule godoc
// @Summary Schedule an event
// @Tags Events
// @Accept json
// @Produce json
// @Param payload body dto.ScheduleEventRequest true "Event payload"
// @Success 201 {object} response.Envelope
// @Router /events [post]
func (h *EventHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid event payload"))
		return
	}
	event, err := h.service.Schedule(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, event, nil)
}

// List godoc
// @Summary List events
// @Tags Events
// @Produce json
// @Param branch_code query string false "Branch code"
// @Param status query string false "Event status"
// @Param request_id query string false "Request ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /events [get]
func (h *EventHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.EventQuery{
		BranchCode: c.Query("branch_code"),
		Status:     c.Query("status"),
		RequestID:  c.Query("request_id"),
		Page:       page,
		PageSize:   limit,
	}
	events, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, events, pagination)
}

// Get godoc
// @Summary Get event detail
// @Tags Events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Router /events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}

// UpdateStatus godoc
// @Summary Update event status
// @Tags Events
// @Accept json
// @Produce json
// @Param id path string true "Event ID"
// @Param payload body dto.UpdateEventStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /events/{id}/status [patch]
func (h *EventHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateEventStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid status payload"))
		return
	}
	event, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, event, nil)
}
