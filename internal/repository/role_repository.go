package repository

import (
	"context"
	"fmt"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// RoleRepository persists role reference data.
type RoleRepository struct {
	store docstore.Store
}

// NewRoleRepository constructs the repository.
func NewRoleRepository(store docstore.Store) *RoleRepository {
	return &RoleRepository{store: store}
}

// Create inserts a new role document.
func (r *RoleRepository) Create(ctx context.Context, role *models.Role) error {
	id, err := r.store.Create(ctx, docstore.CollectionRole, role)
	if err != nil {
		return fmt.Errorf("create role: %w", err)
	}
	role.ID = id
	return nil
}

// List returns all roles, paginated.
func (r *RoleRepository) List(ctx context.Context, page, pageSize int) ([]models.Role, int, error) {
	page, size := clampPage(page, pageSize)

	roles := []models.Role{}
	q := docstore.Query{Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionRole, q, &roles); err != nil {
		return nil, 0, fmt.Errorf("list roles: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionRole, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("count roles: %w", err)
	}
	return roles, total, nil
}
