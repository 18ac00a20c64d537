package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/service"
	"github.com/unifiedhq/usp-api/pkg/response"
)

type exportService interface {
	RequestRegister(ctx context.Context, query dto.RequestQuery, format string) (*service.ExportFile, error)
}

// ExportHandler streams request register exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// RequestRegister godoc
// @Summary Export the program request register
// @Tags Exports
// @Produce octet-stream
// @Param format query string false "csv or pdf" default(csv)
// @Param status query string false "Lifecycle status"
// @Param branch_code query string false "Branch code"
// @Success 200 {file} binary
// @Router /exports/requests [get]
func (h *ExportHandler) RequestRegister(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.RequestQuery{
		Status:     c.Query("status"),
		BranchCode: c.Query("branch_code"),
		Page:       page,
		PageSize:   limit,
	}
	file, err := h.service.RequestRegister(c.Request.Context(), query, c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, file.ContentType, file.Content)
}
