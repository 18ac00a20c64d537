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

type approvalService interface {
	Record(ctx context.Context, req dto.RecordApprovalRequest) (*models.Approval, error)
	List(ctx context.Context, query dto.ApprovalQuery) ([]models.Approval, *models.Pagination, error)
}

// ApprovalHandler exposes REST endpoints for approval decisions.
type ApprovalHandler struct {
	service approvalService
}

// NewApprovalHandler constructs the handler.
func NewApprovalHandler(service approvalService) *ApprovalHandler {
	return &ApprovalHandler{service: service}
}

// Record godoc
// @Summary Record an approval decision
// @Tags Approvals
// @Accept json
// @Produce json
// @Param payload body dto.RecordApprovalRequest true "Decision payload"
// @Success 201 {object} response.Envelope
// @Router /approvals [post]
func (h *ApprovalHandler) Record(c *gin.Context) {
	var req dto.RecordApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid approval payload"))
		return
	}
	approval, err := h.service.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, approval, nil)
}

// List godoc
// @Summary List approval decisions
// @Tags Approvals
// @Produce json
// @Param request_id query string false "Request ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /approvals [get]
func (h *ApprovalHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.ApprovalQuery{
		RequestID: c.Query("request_id"),
		Page:      page,
		PageSize:  limit,
	}
	approvals, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, approvals, pagination)
}
