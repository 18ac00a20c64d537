package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
)

// ReportRepository persists post-event reports.
type ReportRepository struct {
	store docstore.Store
}

// NewReportRepository constructs the repository.
func NewReportRepository(store docstore.Store) *ReportRepository {
	return &ReportRepository{store: store}
}

// Create appends a report document.
func (r *ReportRepository) Create(ctx context.Context, report *models.Report) error {
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	id, err := r.store.Create(ctx, docstore.CollectionReport, report)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	report.ID = id
	return nil
}

// List returns reports matching the filter with a total count.
func (r *ReportRepository) List(ctx context.Context, filter models.OutcomeFilter) ([]models.Report, int, error) {
	conds := outcomeConds(filter)
	page, size := clampPage(filter.Page, filter.PageSize)

	reports := []models.Report{}
	q := docstore.Query{Conds: conds, Limit: size, Offset: (page - 1) * size}
	if err := r.store.Find(ctx, docstore.CollectionReport, q, &reports); err != nil {
		return nil, 0, fmt.Errorf("list reports: %w", err)
	}
	total, err := r.store.Count(ctx, docstore.CollectionReport, conds)
	if err != nil {
		return nil, 0, fmt.Errorf("count reports: %w", err)
	}
	return reports, total, nil
}

func outcomeConds(filter models.OutcomeFilter) []docstore.Cond {
	conds := make([]docstore.Cond, 0, 2)
	if filter.RequestID != "" {
		conds = append(conds, docstore.Cond{Field: "request_id", Value: filter.RequestID})
	}
	if filter.EventID != "" {
		conds = append(conds, docstore.Cond{Field: "event_id", Value: filter.EventID})
	}
	return conds
}
