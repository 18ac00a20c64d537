package repository

import (
	"context"
	"fmt"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// BranchRepository persists branch reference data.
type BranchRepository struct {
	store docstore.Store
}

// NewBranchRepository constructs the repository.
func NewBranchRepository(store docstore.Store) *BranchRepository {
	return &BranchRepository{store: store}
}

// Create inserts a new branch document.
func (r *BranchRepository) Create(ctx context.Context, branch *models.Branch) error {
	id, err := r.store.Create(ctx, docstore.CollectionBranch, branch)
	if err != nil {
		return fmt.Errorf("create branch: %w", err)
	}
	branch.ID = id
	return nil
}

// List returns all branches, paginated.
func (r *BranchRepository) List(ctx context.Context, page, pageSize int) ([]models.Branch, int, error) {
	page, size := clampPage(page, pageSize)

	branches := []models.Branch{}
	q := docstore.Query{Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionBranch, q, &branches); err != nil {
		return nil, 0, fmt.Errorf("list branches: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionBranch, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("count branches: %w", err)
	}
	return branches, total, nil
}

// ExistsByCode reports whether a branch with the given code exists.
func (r *BranchRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	total, err := r.store.Count(ctx, docstore.CollectionBranch, []docstore.Cond{{Field: "code", Value: code}})
	if err != nil {
		return false, fmt.Errorf("check branch code: %w", err)
	}
	return total > 0, nil
}
