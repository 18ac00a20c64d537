package dto

import (
	"time"

	"github.com/unifiedhq/usp-api/internal/models"
)

// ScheduleEventRequest is the event scheduling payload. RequestID is optional
// for ad-hoc events; when present the referenced request must be approved.
type ScheduleEventRequest struct {
	RequestID  *string            `json:"request_id,omitempty"`
	Title      string             `json:"title" validate:"required"`
	BranchCode string             `json:"branch_code" validate:"required"`
	StartTime  time.Time          `json:"start_time" validate:"required"`
	EndTime    time.Time          `json:"end_time" validate:"required"`
	Location   *string            `json:"location,omitempty"`
	Resources  []string           `json:"resources"`
	Status     models.EventStatus `json:"status,omitempty"`
}

// UpdateEventStatusRequest moves an event through its state machine.
type UpdateEventStatusRequest struct {
	Status models.EventStatus `json:"status" validate:"required"`
}

// EventQuery mirrors the supported event listing filters.
type EventQuery struct {
	BranchCode string
	Status     string
	RequestID  string
	Page       int
	PageSize   int
}
