package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
	"github.com/unifiedhq/usp-api/pkg/response"
)

type eventServiceMock struct {
	scheduleResp *models.Event
	scheduleErr  error
	getResp      *models.Event
	getErr       error
	updateResp   *models.Event
	updateErr    error
	listResp     []models.Event
	listErr      error
}

func (m *eventServiceMock) Schedule(ctx context.Context, req dto.ScheduleEventRequest) (*models.Event, error) {
	return m.scheduleResp, m.scheduleErr
}

func (m *eventServiceMock) Get(ctx context.Context, id string) (*models.Event, error) {
	return m.getResp, m.getErr
}

func (m *eventServiceMock) UpdateStatus(ctx context.Context, id string, req dto.UpdateEventStatusRequest) (*models.Event, error) {
	return m.updateResp, m.updateErr
}

func (m *eventServiceMock) List(ctx context.Context, query dto.EventQuery) ([]models.Event, *models.Pagination, error) {
	return m.listResp, &models.Pagination{Page: 1, PageSize: 20, TotalCount: len(m.listResp)}, m.listErr
}

func TestEventHandlerSchedule(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{
		scheduleResp: &models.Event{ID: "evt-1", Status: models.EventStatusScheduled},
	}
	handler := NewEventHandler(mockSvc)

	start := time.Date(2026, 9, 12, 9, 0, 0, 0, time.UTC)
	payload, _ := json.Marshal(dto.ScheduleEventRequest{
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  start,
		EndTime:    start.Add(2 * time.Hour),
	})
	c, w := newGinContext(http.MethodPost, "/events", payload)

	handler.Schedule(c)
	require.Equal(t, http.StatusCreated, w.Code)
}

func TestEventHandlerSchedulePreconditionFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{
		scheduleErr: appErrors.Clone(appErrors.ErrPreconditionFailed, "request not approved"),
	}
	handler := NewEventHandler(mockSvc)

	payload, _ := json.Marshal(dto.ScheduleEventRequest{
		Title:      "Campus fair",
		BranchCode: "BR-01",
		StartTime:  time.Now(),
		EndTime:    time.Now().Add(time.Hour),
	})
	c, w := newGinContext(http.MethodPost, "/events", payload)

	handler.Schedule(c)
	require.Equal(t, http.StatusPreconditionFailed, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, envelope.Error.Code)
}

func TestEventHandlerUpdateStatusConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{
		updateErr: appErrors.Clone(appErrors.ErrInvalidTransition, "cannot move event from completed to in_progress"),
	}
	handler := NewEventHandler(mockSvc)

	payload, _ := json.Marshal(dto.UpdateEventStatusRequest{Status: models.EventStatusInProgress})
	c, w := newGinContext(http.MethodPatch, "/events/evt-1/status", payload)
	c.Params = gin.Params{{Key: "id", Value: "evt-1"}}

	handler.UpdateStatus(c)
	require.Equal(t, http.StatusConflict, w.Code)
}
