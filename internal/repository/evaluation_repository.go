package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// EvaluationRepository persists scored assessments.
type EvaluationRepository struct {
	store docstore.Store
}

// NewEvaluationRepository constructs the repository.
func NewEvaluationRepository(store docstore.Store) *EvaluationRepository {
	return &EvaluationRepository{store: store}
}

// Create appends an evaluation document.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if evaluation.CreatedAt.IsZero() {
		evaluation.CreatedAt = time.Now().UTC()
	}
	id, err := r.store.Create(ctx, docstore.CollectionEvaluation, evaluation)
	if err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	evaluation.ID = id
	return nil
}

// List returns evaluations matching the filter with a total count.
func (r *EvaluationRepository) List(ctx context.Context, filter models.OutcomeFilter) ([]models.Evaluation, int, error) {
	conds := outcomeConds(filter)
	page, size := clampPage(filter.Page, filter.PageSize)

	evaluations := []models.Evaluation{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionEvaluation, q, &evaluations); err != nil {
		return nil, 0, fmt.Errorf("list evaluations: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionEvaluation, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count evaluations: %w", err)
	}
	return evaluations, total, nil
}
