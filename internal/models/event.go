package models

import "time"

// EventStatus captures the scheduling states of an event.
type EventStatus string

const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in_progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

var eventTransitions = map[EventStatus][]EventStatus{
	EventStatusScheduled:  {EventStatusInProgress, EventStatusCancelled},
	EventStatusInProgress: {EventStatusCompleted, EventStatusCancelled},
	EventStatusCompleted:  {},
	EventStatusCancelled:  {},
}

// Valid reports whether the status is a known event state.
func (s EventStatus) Valid() bool {
	_, ok := eventTransitions[s]
	return ok
}

// CanTransition reports whether next is an allowed successor of s.
func (s EventStatus) CanTransition(next EventStatus) bool {
	for _, allowed := range eventTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// EventPredecessors returns the statuses from which next is reachable.
func EventPredecessors(next EventStatus) []EventStatus {
	var from []EventStatus
	for status, successors := range eventTransitions {
		for _, allowed := range successors {
			if allowed == next {
				from = append(from, status)
			}
		}
	}
	return from
}

// Event is a scheduled occurrence of an approved program. RequestID is nil
// for ad-hoc events not tied to a request.
type Event struct {
	ID         string      `json:"id"`
	RequestID  *string     `json:"request_id,omitempty"`
	Title      string      `json:"title"`
	BranchCode string      `json:"branch_code"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	Location   *string     `json:"location,omitempty"`
	Resources  []string    `json:"resources"`
	Status     EventStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// EventFilter constrains event listing queries.
type EventFilter struct {
	BranchCode string
	Status     EventStatus
	RequestID  string
	Page       int
	PageSize   int
}
