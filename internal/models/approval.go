package models

import "time"

// Decision enumerates approval outcomes.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

// Valid reports whether the decision is a known outcome.
func (d Decision) Valid() bool {
	return d == DecisionApproved || d == DecisionRejected
}

// TargetStatus maps the decision onto the request status it implies.
func (d Decision) TargetStatus() RequestStatus {
	if d == DecisionApproved {
		return RequestStatusApproved
	}
	return RequestStatusRejected
}

// Approval is an immutable record of a decision against a program request.
type Approval struct {
	ID         string    `json:"id"`
	RequestID  string    `json:"request_id"`
	ApprovedBy string    `json:"approved_by"`
	Decision   Decision  `json:"decision"`
	Notes      *string   `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ApprovalFilter constrains approval listing queries.
type ApprovalFilter struct {
	RequestID string
	Page      int
	PageSize  int
}
