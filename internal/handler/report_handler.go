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

type reportService interface {
	Submit(ctx context.Context, req dto.SubmitReportRequest) (*models.Report, error)
	List(ctx context.Context, query dto.OutcomeQuery) ([]models.Report, *models.Pagination, error)
}

// ReportHandler exposes REST endpoints for post-event reports.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Submit godoc
// @Summary Submit a post-event report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.SubmitReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Submit(c *gin.Context) {
	var req dto.SubmitReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid report payload"))
		return
	}
	report, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, report, nil)
}

// List godoc
// @Summary List reports
// @Tags Reports
// @Produce json
// @Param request_id query string false "Request ID"
// @Param event_id query string false "Event ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /reports [get]
func (h *ReportHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.OutcomeQuery{
		RequestID: c.Query("request_id"),
		EventID:   c.Query("event_id"),
		Page:      page,
		PageSize:  limit,
	}
	reports, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, reports, pagination)
}
