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

type notificationService interface {
	Create(ctx context.Context, req dto.CreateNotificationRequest) (*models.Notification, error)
	List(ctx context.Context, query dto.NotificationQuery) ([]models.Notification, *models.Pagination, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationHandler exposes REST endpoints for notifications.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs the handler.
func NewNotificationHandler(service notificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// Create godoc
// @Summary Create a notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body dto.CreateNotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req dto.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid notification payload"))
		return
	}
	notification, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusCreated, notification, nil)
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Param user_email query string false "User email"
// @Param branch_code query string false "Branch code"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	page, limit := paginationParams(c)
	query := dto.NotificationQuery{
		UserEmail:  c.Query("user_email"),
		BranchCode: c.Query("branch_code"),
		Page:       page,
		PageSize:   limit,
	}
	notifications, pagination, err := h.service.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notifications, pagination)
}

// MarkRead godoc
// @Summary Mark a notification as read
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 204 "No Content"
// @Router /notifications/{id}/read [patch]
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	if err := h.service.MarkRead(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
