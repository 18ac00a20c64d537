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

type eventStore interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error)
	UpdateStatusIf(ctx context.Context, id string, target models.EventStatus, allowed []models.EventStatus) error
}

// EventService schedules events and moves them through their state machine.
// An event tied to a request requires that request to be approved first.
type EventService struct {
	events     eventStore
	requests   requestReader
	references referenceValidator
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewEventService constructs the service.
func NewEventService(events eventStore, requests requestReader, references referenceValidator, logger *zap.Logger) *EventService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventService{
		events:     events,
		requests:   requests,
		references: references,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Schedule validates and persists a new event.
func (s *EventService) Schedule(ctx context.Context, req dto.ScheduleEventRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid event payload")
	}
	if !req.StartTime.Before(req.EndTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "start_time must be before end_time")
	}

	status := req.Status
	if status == "" {
		status = models.EventStatusScheduled
	}
	if !status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported event status %q", status))
	}

	if req.RequestID != nil && *req.RequestID != "" {
		request, err := s.requests.GetByID(ctx, *req.RequestID)
		if err != nil {
			if errors.Is(err, docstore.ErrNoDocument) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "program request not found")
			}
			return nil, storeError(err, "failed to fetch program request")
		}
		if request.Status != models.RequestStatusApproved {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed,
				fmt.Sprintf("request %s is %s, only approved requests can be scheduled", request.ID, request.Status))
		}
	}

	exists, err := s.references.BranchExists(ctx, req.BranchCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown branch code %q", req.BranchCode))
	}
	for _, resourceID := range req.Resources {
		exists, err := s.references.ResourceExists(ctx, resourceID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown resource %q", resourceID))
		}
	}

	event := &models.Event{
		RequestID:  req.RequestID,
		Title:      req.Title,
		BranchCode: req.BranchCode,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Resources:  req.Resources,
		Status:     status,
	}
	if event.Resources == nil {
		event.Resources = []string{}
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, storeError(err, "failed to create event")
	}
	s.logger.Info("event scheduled",
		zap.String("event_id", event.ID),
		zap.String("branch_code", event.BranchCode))
	return event, nil
}

// Get fetches a single event by identifier.
func (s *EventService) Get(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		}
		return nil, storeError(err, "failed to fetch event")
	}
	return event, nil
}

// UpdateStatus moves an event to the requested status via the guarded update.
func (s *EventService) UpdateStatus(ctx context.Context, id string, req dto.UpdateEventStatusRequest) (*models.Event, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid status payload")
	}
	if !req.Status.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported event status %q", req.Status))
	}

	event, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !event.Status.CanTransition(req.Status) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move event from %s to %s", event.Status, req.Status))
	}

	if err := s.events.UpdateStatusIf(ctx, id, req.Status, models.EventPredecessors(req.Status)); err != nil {
		switch {
		case errors.Is(err, docstore.ErrConditionFailed):
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "event status changed concurrently")
		case errors.Is(err, docstore.ErrNoDocument):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "event not found")
		default:
			return nil, storeError(err, "failed to update event status")
		}
	}
	event.Status = req.Status
	s.logger.Info("event status updated",
		zap.String("event_id", id),
		zap.String("status", string(req.Status)))
	return event, nil
}

// List returns events matching the query, paginated.
func (s *EventService) List(ctx context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error) {
	filter := models.EventFilter{
		BranchCode: query.BranchCode,
		RequestID:  query.RequestID,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.Status != "" {
		status := models.EventStatus(query.Status)
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported status filter %q", query.Status))
		}
		filter.Status = status
	}

	events, total, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list events")
	}
	return events, newPagination(filter.Page, filter.PageSize, total), nil
}
