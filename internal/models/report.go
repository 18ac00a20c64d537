package models

import "time"

// Report is a post-event factual summary. Reports are append-only.
type Report struct {
	ID             string    `json:"id"`
	RequestID      *string   `json:"request_id,omitempty"`
	EventID        *string   `json:"event_id,omitempty"`
	SubmittedBy    *string   `json:"submitted_by,omitempty"`
	Summary        string    `json:"summary"`
	AttendeesCount *int      `json:"attendees_count,omitempty"`
	Photos         []string  `json:"photos"`
	CreatedAt      time.Time `json:"created_at"`
}

// Evaluation is a scored post-event assessment. Evaluations are append-only.
type Evaluation struct {
	ID          string    `json:"id"`
	RequestID   *string   `json:"request_id,omitempty"`
	EventID     *string   `json:"event_id,omitempty"`
	Score       float64   `json:"score"`
	Methodology *string   `json:"methodology,omitempty"`
	Comments    *string   `json:"comments,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// OutcomeFilter constrains report and evaluation listing queries.
type OutcomeFilter struct {
	RequestID string
	EventID   string
	Page      int
	PageSize  int
}
