package models

import "time"

// ProgramType enumerates the program categories a branch may propose.
type ProgramType string

const (
	ProgramStudentActivity  ProgramType = "student_activity"
	ProgramCommunityService ProgramType = "community_service"
	ProgramVolunteering     ProgramType = "volunteering"
)

// Valid reports whether the program type is one of the supported categories.
func (t ProgramType) Valid() bool {
	switch t {
	case ProgramStudentActivity, ProgramCommunityService, ProgramVolunteering:
		return true
	default:
		return false
	}
}

// RequestStatus captures the lifecycle states of a program request.
type RequestStatus string

const (
	RequestStatusSubmitted   RequestStatus = "submitted"
	RequestStatusUnderReview RequestStatus = "under_review"
	RequestStatusApproved    RequestStatus = "approved"
	RequestStatusRejected    RequestStatus = "rejected"
)

// requestTransitions maps each status to its allowed successors. Review may
// be skipped, so submitted can move straight to a terminal state.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusSubmitted:   {RequestStatusUnderReview, RequestStatusApproved, RequestStatusRejected},
	RequestStatusUnderReview: {RequestStatusApproved, RequestStatusRejected},
	RequestStatusApproved:    {},
	RequestStatusRejected:    {},
}

// Valid reports whether the status is a known lifecycle state.
func (s RequestStatus) Valid() bool {
	_, ok := requestTransitions[s]
	return ok
}

// Terminal reports whether no further transitions are allowed.
func (s RequestStatus) Terminal() bool {
	return len(requestTransitions[s]) == 0 && s.Valid()
}

// CanTransition reports whether next is an allowed successor of s.
func (s RequestStatus) CanTransition(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// RequestPredecessors returns the statuses from which next is reachable.
// The conditional status update guards on this set.
func RequestPredecessors(next RequestStatus) []RequestStatus {
	var from []RequestStatus
	for status, successors := range requestTransitions {
		for _, allowed := range successors {
			if allowed == next {
				from = append(from, status)
			}
		}
	}
	return from
}

// BudgetItem is a named non-negative line item on a request budget.
type BudgetItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// ProgramRequest is a branch proposal to run a program. Requests are a
// historical record: they are never deleted and only approval decisions
// mutate their status.
type ProgramRequest struct {
	ID           string        `json:"id"`
	BranchCode   string        `json:"branch_code"`
	ProgramTitle string        `json:"program_title"`
	ProgramType  ProgramType   `json:"program_type"`
	Description  *string       `json:"description,omitempty"`
	ProposedDate *time.Time    `json:"proposed_date,omitempty"`
	Location     *string       `json:"location,omitempty"`
	Budget       []BudgetItem  `json:"budget"`
	RequestedBy  *string       `json:"requested_by,omitempty"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// RequestFilter constrains request listing queries.
type RequestFilter struct {
	Status     RequestStatus
	BranchCode string
	Page       int
	PageSize   int
}
