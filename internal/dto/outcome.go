package dto

// SubmitReportRequest is the post-event report payload.
type SubmitReportRequest struct {
	RequestID      *string  `json:"request_id,omitempty"`
	EventID        *string  `json:"event_id,omitempty"`
	SubmittedBy    *string  `json:"submitted_by,omitempty"`
	Summary        string   `json:"summary" validate:"required"`
	AttendeesCount *int     `json:"attendees_count,omitempty"`
	Photos         []string `json:"photos"`
}

// SubmitEvaluationRequest is the scored assessment payload.
type SubmitEvaluationRequest struct {
	RequestID   *string `json:"request_id,omitempty"`
	EventID     *string `json:"event_id,omitempty"`
	Score       float64 `json:"score"`
	Methodology *string `json:"methodology,omitempty"`
	Comments    *string `json:"comments,omitempty"`
}

// OutcomeQuery mirrors the supported report/evaluation listing filters.
type OutcomeQuery struct {
	RequestID string
	EventID   string
	Page      int
	PageSize  int
}
