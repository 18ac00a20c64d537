package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// ApprovalRepository persists approval decisions.
type ApprovalRepository struct {
	store docstore.Store
}

// NewApprovalRepository constructs the repository.
func NewApprovalRepository(store docstore.Store) *ApprovalRepository {
	return &ApprovalRepository{store: store}
}

// CreateWithStatus persists the approval record and flips the referenced
// request's status in a single transaction. The status update is guarded on
// the allowed predecessor set; a decision that lost the race rolls back the
// approval insert along with it (docstore.ErrConditionFailed).
func (r *ApprovalRepository) CreateWithStatus(ctx context.Context, approval *models.Approval, target models.RequestStatus, allowed []models.RequestStatus) error {
	if approval.CreatedAt.IsZero() {
		approval.CreatedAt = time.Now().UTC()
	}
	guard := make([]string, len(allowed))
	for i, status := range allowed {
		guard[i] = string(status)
	}
	return r.store.Atomic(ctx, func(tx docstore.Store) error {
		id, err := tx.Create(ctx, docstore.CollectionApproval, approval)
		if err != nil {
			return fmt.Errorf("create approval: %w", err)
		}
		approval.ID = id
		patch := map[string]any{
			"status":     string(target),
			"updated_at": time.Now().UTC(),
		}
		if err := tx.UpdateOneIf(ctx, docstore.CollectionProgramRequest, approval.RequestID, "status", guard, patch); err != nil {
			return err
		}
		return nil
	})
}

// List returns approvals matching the filter with a total count.
func (r *ApprovalRepository) List(ctx context.Context, filter models.ApprovalFilter) ([]models.Approval, int, error) {
	conds := make([]docstore.Cond, 0, 1)
	if filter.RequestID != "" {
		conds = append(conds, docstore.Cond{Field: "request_id", Value: filter.RequestID})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	approvals := []models.Approval{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionApproval, q, &approvals); err != nil {
		return nil, 0, fmt.Errorf("list approvals: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionApproval, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count approvals: %w", err)
	}
	return approvals, total, nil
}
