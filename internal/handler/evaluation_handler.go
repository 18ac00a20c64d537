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

type evaluationService interface {
	Submit(ctx context.Context, req dto.SubmitEvaluationRequest) (*models.Evaluation, error)
	List(ctx context.Context, query dto.OutcomeQuery) ([]models.Evaluation, *models.Pagination, error)
}

// EvaluationHandler exposes REST endpoints for program evaluations.
type EvaluationHandler struct {
	service evaluationService
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(service evaluationService) *EvaluationHandler {
	return &EvaluationHandler{service: service}
}

// Submit godoc
// @Summary Submit an evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body dto.SubmitEvaluationRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope
// @Router /evaluations [post]
func (h *EvaluationHandler) Submit(c *gin.Context) {
	var req dto.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid evaluation payload"))
		return
	}
	evaluation, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, evaluation, nil)
}

// List godoc
// @Summary List evaluations
// @Tags Evaluations
// @Produce json
// @Param request_id query string false "Request ID"
// @Param event_id query string false "Event ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /evaluations [get]
func (h *EvaluationHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.OutcomeQuery{
		RequestID: c.Query("request_id"),
		EventID:   c.Query("event_id"),
		Page:      page,
		PageSize:  limit,
	}
	evaluations, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluations, pagination)
}
