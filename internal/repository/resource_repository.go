package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// ResourceRepository persists resource inventory.
type ResourceRepository struct {
	store docstore.Store
}

// NewResourceRepository constructs the repository.
func NewResourceRepository(store docstore.Store) *ResourceRepository {
	return &ResourceRepository{store: store}
}

// Create inserts a new resource document.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.Resource) error {
	id, err := r.store.Create(ctx, docstore.CollectionResource, resource)
	if err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	resource.ID = id
	return nil
}

// List returns resources matching the filter with a total count.
func (r *ResourceRepository) List(ctx context.Context, filter models.ResourceFilter) ([]models.Resource, int, error) {
	conds := make([]docstore.Cond, 0, 2)
	if filter.BranchCode != "" {
		conds = append(conds, docstore.Cond{Field: "branch_code", Value: filter.BranchCode})
	}
	if filter.Type != "" {
		conds = append(conds, docstore.Cond{Field: "type", Value: string(filter.Type)})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	resources := []models.Resource{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionResource, q, &resources); err != nil {
		return nil, 0, fmt.Errorf("list resources: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionResource, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count resources: %w", err)
	}
	return resources, total, nil
}

// Exists reports whether a resource with the given identity exists.
func (r *ResourceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var resource models.Resource
	err := r.store.FindByID(ctx, docstore.CollectionResource, id, &resource)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, docstore.ErrNoDocument) {
		return false, nil
	}
	return false, fmt.Errorf("check resource: %w", err)
}
