package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type reportStore interface {
	Create(ctx context.Context, report *models.Report) error
	List(ctx context.Context, filter models.OutcomeFilter) ([]models.Report, int, error)
}

// ReportService records post-event reports. Reports are append-only and may
// reference a request, an event, or both.
type ReportService struct {
	reports   reportStore
	requests  requestReader
	events    eventReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(reports reportStore, requests requestReader, events eventReader, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		reports:   reports,
		requests:  requests,
		events:    events,
		validator: validator.New(),
		logger:    logger,
	}
}

// Submit validates and persists a new report.
func (s *ReportService) Submit(ctx context.Context, req dto.SubmitReportRequest) (*models.Report, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report payload")
	}
	if req.AttendeesCount != nil && *req.AttendeesCount < 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "attendees_count must be non-negative")
	}
	if err := checkOutcomeRefs(ctx, s.requests, s.events, req.RequestID, req.EventID); err != nil {
		return nil, err
	}

	report := &models.Report{
		RequestID:      req.RequestID,
		EventID:        req.EventID,
		SubmittedBy:    req.SubmittedBy,
		Summary:        req.Summary,
		AttendeesCount: req.AttendeesCount,
		Photos:         req.Photos,
	}
	if report.Photos == nil {
		report.Photos = []string{}
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, storeError(err, "failed to create report")
	}
	s.logger.Info("report submitted", zap.String("report_id", report.ID))
	return report, nil
}

// List returns reports matching the query, paginated.
func (s *ReportService) List(ctx context.Context, query dto.OutcomeQuery) ([]models.Report, *models.Pagination, error) {
	filter := models.OutcomeFilter{
		RequestID: query.RequestID,
		EventID:   query.EventID,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	reports, total, err := s.reports.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list reports")
	}
	return reports, newPagination(filter.Page, filter.PageSize, total), nil
}
