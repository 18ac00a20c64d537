package dto

import "github.com/unifiedhq/usp-api/internal/models"

// CreateNotificationRequest targets a user email, a branch, or both.
type CreateNotificationRequest struct {
	UserEmail  *string                 `json:"user_email,omitempty" validate:"omitempty,email"`
	BranchCode *string                 `json:"branch_code,omitempty"`
	Title      string                  `json:"title" validate:"required"`
	Message    string                  `json:"message" validate:"required"`
	Type       models.NotificationType `json:"type,omitempty"`
}

// NotificationQuery mirrors the supported notification listing filters.
type NotificationQuery struct {
	UserEmail  string
	BranchCode string
	Page       int
	PageSize   int
}
