package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type eventRepoStub struct {
	mu      sync.Mutex
	byID    map[string]*models.Event
	created []*models.Event
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event.ID = "evt-1"
	s.created = append(s.created, event)
	if s.byID == nil {
		s.byID = map[string]*models.Event{}
	}
	s.byID[event.ID] = event
	return nil
}

func (s *eventRepoStub) GetByID(ctx context.Context, id string) (*models.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if event, ok := s.byID[id]; ok {
		copy := *event
		return &copy, nil
	}
	return nil, docstore.ErrNoDocument
}

func (s *eventRepoStub) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []models.Event{}
	for _, event := range s.byID {
		if filter.Status != "" && event.Status != filter.Status {
			continue
		}
		result = append(result, *event)
	}
	return result, len(result), nil
}

func (s *eventRepoStub) UpdateStatusIf(ctx context.Context, id string, target models.EventStatus, allowed []models.EventStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, ok := s.byID[id]
	if !ok {
		return docstore.ErrNoDocument
	}
	for _, status := range allowed {
		if status == event.Status {
			event.Status = target
			return nil
		}
	}
	return docstore.ErrConditionFailed
}

func eventWindow() (time.Time, time.Time) {
	start := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	return start, start.Add(3 * time.Hour)
}

func TestEventServiceScheduleDefaultsToScheduled(t *testing.T) {
	repo := &eventRepoStub{}
	refs := &referenceStub{branches: map[string]bool{"BR-01": true}}
	svc := NewEventService(repo, &requestRepoStub{}, refs, nil)

	start, end := eventWindow()
	event, err := svc.Schedule(context.Background(), dto.ScheduleEventRequest{
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  start,
		EndTime:    end,
	})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusScheduled, event.Status)
	assert.NotNil(t, event.Resources)
}

func TestEventServiceScheduleRejectsInvertedWindow(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, &requestRepoStub{}, &referenceStub{branches: map[string]bool{"BR-01": true}}, nil)

	start, end := eventWindow()
	_, err := svc.Schedule(context.Background(), dto.ScheduleEventRequest{
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  end,
		EndTime:    start,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceScheduleRequiresApprovedRequest(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", Status: models.RequestStatusSubmitted},
	}}
	svc := NewEventService(&eventRepoStub{}, requests, &referenceStub{branches: map[string]bool{"BR-01": true}}, nil)

	start, end := eventWindow()
	_, err := svc.Schedule(context.Background(), dto.ScheduleEventRequest{
		RequestID:  strPtr("req-1"),
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  start,
		EndTime:    end,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestEventServiceScheduleMissingRequest(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, &requestRepoStub{}, &referenceStub{branches: map[string]bool{"BR-01": true}}, nil)

	start, end := eventWindow()
	_, err := svc.Schedule(context.Background(), dto.ScheduleEventRequest{
		RequestID:  strPtr("missing"),
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  start,
		EndTime:    end,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceScheduleRejectsUnknownResource(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", Status: models.RequestStatusApproved},
	}}
	refs := &referenceStub{branches: map[string]bool{"BR-01": true}, resources: map[string]bool{"res-1": true}}
	svc := NewEventService(&eventRepoStub{}, requests, refs, nil)

	start, end := eventWindow()
	_, err := svc.Schedule(context.Background(), dto.ScheduleEventRequest{
		RequestID:  strPtr("req-1"),
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  start,
		EndTime:    end,
		Resources:  []string{"res-1", "res-9"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestEventServiceUpdateStatusHappyPath(t *testing.T) {
	repo := &eventRepoStub{byID: map[string]*models.Event{
		"evt-1": {ID: "evt-1", Status: models.EventStatusScheduled},
	}}
	svc := NewEventService(repo, &requestRepoStub{}, &referenceStub{}, nil)

	event, err := svc.UpdateStatus(context.Background(), "evt-1", dto.UpdateEventStatusRequest{Status: models.EventStatusInProgress})
	require.NoError(t, err)
	assert.Equal(t, models.EventStatusInProgress, event.Status)
}

func TestEventServiceUpdateStatusRejectsSkip(t *testing.T) {
	repo := &eventRepoStub{byID: map[string]*models.Event{
		"evt-1": {ID: "evt-1", Status: models.EventStatusScheduled},
	}}
	svc := NewEventService(repo, &requestRepoStub{}, &referenceStub{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "evt-1", dto.UpdateEventStatusRequest{Status: models.EventStatusCompleted})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.EventStatusScheduled, repo.byID["evt-1"].Status)
}

func TestEventServiceUpdateStatusNotFound(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, &requestRepoStub{}, &referenceStub{}, nil)

	_, err := svc.UpdateStatus(context.Background(), "missing", dto.UpdateEventStatusRequest{Status: models.EventStatusCancelled})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEventServiceListRejectsBadStatusFilter(t *testing.T) {
	svc := NewEventService(&eventRepoStub{}, &requestRepoStub{}, &referenceStub{}, nil)

	_, _, err := svc.List(context.Background(), dto.EventQuery{Status: "bogus"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
