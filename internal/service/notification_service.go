package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error)
	MarkRead(ctx context.Context, id string) error
}

// NotificationService delivers in-app notifications. Delivery is best effort;
// a failed decision notification is logged, never surfaced to the caller.
type NotificationService struct {
	notifications notificationStore
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewNotificationService constructs the service.
func NewNotificationService(notifications notificationStore, logger *zap.Logger) *NotificationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{
		notifications: notifications,
		validator:     validator.New(),
		logger:        logger,
	}
}

// Create validates and persists a notification.
func (s *NotificationService) Create(ctx context.Context, req dto.CreateNotificationRequest) (*models.Notification, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notification payload")
	}
	kind := req.Type
	if kind == "" {
		kind = models.NotificationInfo
	}
	if !kind.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported notification type %q", kind))
	}

	notification := &models.Notification{
		UserEmail:  req.UserEmail,
		BranchCode: req.BranchCode,
		Title:      req.Title,
		Message:    req.Message,
		Type:       kind,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		return nil, storeError(err, "failed to create notification")
	}
	return notification, nil
}

// List returns notifications matching the query, paginated.
func (s *NotificationService) List(ctx context.Context, query dto.NotificationQuery) ([]models.Notification, *models.Pagination, error) {
	filter := models.NotificationFilter{
		UserEmail:  query.UserEmail,
		BranchCode: query.BranchCode,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	notifications, total, err := s.notifications.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list notifications")
	}
	return notifications, newPagination(filter.Page, filter.PageSize, total), nil
}

// MarkRead flips the read flag on a notification.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if err := s.notifications.MarkRead(ctx, id); err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return appErrors.Clone(appErrors.ErrNotFound, "notification not found")
		}
		return storeError(err, "failed to mark notification read")
	}
	return nil
}

// NotifyDecision posts a branch-targeted notification about an approval
// decision.
func (s *NotificationService) NotifyDecision(ctx context.Context, request *models.ProgramRequest, decision models.Decision) {
	kind := models.NotificationSuccess
	if decision == models.DecisionRejected {
		kind = models.NotificationWarning
	}
	branch := request.BranchCode
	notification := &models.Notification{
		UserEmail:  request.RequestedBy,
		BranchCode: &branch,
		Title:      fmt.Sprintf("Program request %s", decision),
		Message:    fmt.Sprintf("Request %q has been %s", request.ProgramTitle, decision),
		Type:       kind,
	}
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("decision notification failed",
			zap.String("request_id", request.ID),
			zap.Error(err))
	}
}
