package dto

import (
	"time"

	"github.com/unifiedhq/usp-api/internal/models"
)

// BudgetItemPayload mirrors a request budget line.
type BudgetItemPayload struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount"`
}

// SubmitRequestRequest is the submission payload. Any supplied status is
// ignored; new requests always start as submitted.
type SubmitRequestRequest struct {
	BranchCode   string              `json:"branch_code" validate:"required"`
	ProgramTitle string              `json:"program_title" validate:"required"`
	ProgramType  models.ProgramType  `json:"program_type" validate:"required"`
	Description  *string             `json:"description,omitempty"`
	ProposedDate *time.Time          `json:"proposed_date,omitempty"`
	Location     *string             `json:"location,omitempty"`
	Budget       []BudgetItemPayload `json:"budget"`
	RequestedBy  *string             `json:"requested_by,omitempty"`
	Status       string              `json:"status,omitempty"`
}

// RequestQuery mirrors the supported request listing filters.
type RequestQuery struct {
	Status     string
	BranchCode string
	Page       int
	PageSize   int
}
