package models

import "time"

// NotificationType enumerates notification severities.
type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationSuccess NotificationType = "success"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
)

// Valid reports whether the notification type is recognised.
func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationSuccess, NotificationWarning, NotificationError:
		return true
	default:
		return false
	}
}

// Notification targets a user email, a branch, or both.
type Notification struct {
	ID         string           `json:"id"`
	UserEmail  *string          `json:"user_email,omitempty"`
	BranchCode *string          `json:"branch_code,omitempty"`
	Title      string           `json:"title"`
	Message    string           `json:"message"`
	Type       NotificationType `json:"type"`
	IsRead     bool             `json:"is_read"`
	CreatedAt  time.Time        `json:"created_at"`
}

// NotificationFilter constrains notification listing queries.
type NotificationFilter struct {
	UserEmail  string
	BranchCode string
	Page       int
	PageSize   int
}
