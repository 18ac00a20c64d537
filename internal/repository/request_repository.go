package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// RequestRepository persists program requests.
type RequestRepository struct {
	store docstore.Store
}

// NewRequestRepository constructs the repository.
func NewRequestRepository(store docstore.Store) *RequestRepository {
	return &RequestRepository{store: store}
}

// Create inserts a new request document and fills in the generated identity.
func (r *RequestRepository) Create(ctx context.Context, request *models.ProgramRequest) error {
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now
	id, err := r.store.Create(ctx, docstore.CollectionProgramRequest, request)
	if err != nil {
		return fmt.Errorf("create program request: %w", err)
	}
	request.ID = id
	return nil
}

// GetByID fetches a request by identifier.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.ProgramRequest, error) {
	var request models.ProgramRequest
	if err := r.store.FindByID(ctx, docstore.CollectionProgramRequest, id, &request); err != nil {
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the filter with a total count.
func (r *RequestRepository) List(ctx context.Context, filter models.RequestFilter) ([]models.ProgramRequest, int, error) {
	conds := make([]docstore.Cond, 0, 2)
	if filter.Status != "" {
		conds = append(conds, docstore.Cond{Field: "status", Value: string(filter.Status)})
	}
	if filter.BranchCode != "" {
		conds = append(conds, docstore.Cond{Field: "branch_code", Value: filter.BranchCode})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	requests := []models.ProgramRequest{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionProgramRequest, q, &requests); err != nil {
		return nil, 0, fmt.Errorf("list program requests: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionProgramRequest, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count program requests: %w", err)
	}
	return requests, total, nil
}
