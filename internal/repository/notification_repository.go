package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// NotificationRepository persists notifications.
type NotificationRepository struct {
	store docstore.Store
}

// NewNotificationRepository constructs the repository.
func NewNotificationRepository(store docstore.Store) *NotificationRepository {
	return &NotificationRepository{store: store}
}

// Create inserts a new notification document.
func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	id, err := r.store.Create(ctx, docstore.CollectionNotification, notification)
	if err != nil {
		return fmt.Errorf("create notification: %w", err)
	}
	notification.ID = id
	return nil
}

// List returns notifications matching the filter with a total count.
func (r *NotificationRepository) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	conds := make([]docstore.Cond, 0, 2)
	if filter.UserEmail != "" {
		conds = append(conds, docstore.Cond{Field: "user_email", Value: filter.UserEmail})
	}
	if filter.BranchCode != "" {
		conds = append(conds, docstore.Cond{Field: "branch_code", Value: filter.BranchCode})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	notifications := []models.Notification{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionNotification, q, &notifications); err != nil {
		return nil, 0, fmt.Errorf("list notifications: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionNotification, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count notifications: %w", err)
	}
	return notifications, total, nil
}

// MarkRead flips the read flag on a notification.
func (r *NotificationRepository) MarkRead(ctx context.Context, id string) error {
	return r.store.UpdateOne(ctx, docstore.CollectionNotification, id, map[string]any{"is_read": true})
}
