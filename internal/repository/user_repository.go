package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// UserRepository persists user reference data.
type UserRepository struct {
	store docstore.Store
}

// NewUserRepository constructs the repository.
func NewUserRepository(store docstore.Store) *UserRepository {
	return &UserRepository{store: store}
}

// Create inserts a new user document.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	id, err := r.store.Create(ctx, docstore.CollectionUser, user)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	user.ID = id
	return nil
}

// List returns users matching the filter with a total count.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, int, error) {
	conds := make([]docstore.Cond, 0, 1)
	if filter.BranchCode != "" {
		conds = append(conds, docstore.Cond{Field: "branch_code", Value: filter.BranchCode})
	}
	page, size := clampPage(filter.Page, filter.PageSize)

	users := []models.User{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionUser, q, &users); err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionUser, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}
	return users, total, nil
}

// Exists reports whether a user resolves by identity or email. Requests may
// reference users either way.
func (r *UserRepository) Exists(ctx context.Context, identifier string) (bool, error) {
	var user models.User
	err := r.store.FindByID(ctx, docstore.CollectionUser, identifier, &user)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, docstore.ErrNoDocument) {
		return false, fmt.Errorf("check user id: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionUser, []docstore.Cond{{Field: "email", Value: identifier}})
	if err != nil {
		return false, fmt.Errorf("check user email: %w", err)
	}
	return total > 0, nil
}
