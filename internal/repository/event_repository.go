package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// EventRepository persists scheduled events.
type EventRepository struct {
	store docstore.Store
}

// NewEventRepository constructs the repository.
func NewEventRepository(store docstore.Store) *EventRepository {
	return &EventRepository{store: store}
}

// Create inserts a new event document and fills in the generated identity.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now
	id, err := r.store.Create(ctx, docstore.CollectionEvent, event)
	if err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	event.ID = id
	return nil
}

// GetByID fetches an event by identifier.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.store.FindByID(ctx, docstore.CollectionEvent, id, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// List returns events matching the filter with a total count.
func (r *EventRepository) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	conds := make([]docstore.Cond, 0, 3)
	if filter.BranchCode != "" {
		conds = append(conds, docstore.Cond{Field: "branch_code", Value: filter.BranchCode})
	}
	if filter.Status != "" {
		conds = append(conds, docstore.Cond{Field: "status", Value: string(filter.Status)})
	}
	if filter.RequestID != "" {
		conds = append(conds, docstore.Cond{Field: "request_id", Value: filter.RequestID})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	events := []models.Event{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionEvent, q, &events); err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionEvent, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}
	return events, total, nil
}

// UpdateStatusIf flips the event status guarded on the allowed predecessor
// set.
func (r *EventRepository) UpdateStatusIf(ctx context.Context, id string, target models.EventStatus, allowed []models.EventStatus) error {
	guard := make([]string, len(allowed))
	for i, status := range allowed {
		guard[i] = string(status)
	}
	patch := map[string]any{
		"status":     string(target),
		"updated_at": time.Now().UTC(),
	}
	return r.store.UpdateOneIf(ctx, docstore.CollectionEvent, id, "status", guard, patch)
}
