package dto

import "github.com/unifiedhq/usp-api/internal/models"

// RecordApprovalRequest captures a reviewer decision against a request.
type RecordApprovalRequest struct {
	RequestID  string          `json:"request_id" validate:"required"`
	ApprovedBy string          `json:"approved_by" validate:"required"`
	Decision   models.Decision `json:"decision" validate:"required"`
	Notes      *string         `json:"notes,omitempty"`
}

// ApprovalQuery mirrors the supported approval listing filters.
type ApprovalQuery struct {
	RequestID string
	Page      int
	PageSize  int
}
