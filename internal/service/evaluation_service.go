package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type evaluationStore interface {
	Create(ctx context.Context, evaluation *models.Evaluation) error
	List(ctx context.Context, filter models.OutcomeFilter) ([]models.Evaluation, int, error)
}

// EvaluationService records scored assessments of completed programs.
type EvaluationService struct {
	evaluations evaluationStore
	requests    requestReader
	events      eventReader
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewEvaluationService constructs the service.
func NewEvaluationService(evaluations evaluationStore, requests requestReader, events eventReader, logger *zap.Logger) *EvaluationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EvaluationService{
		evaluations: evaluations,
		requests:    requests,
		events:      events,
		validator:   validator.New(),
		logger:      logger,
	}
}

// Submit validates and persists a new evaluation.
func (s *EvaluationService) Submit(ctx context.Context, req dto.SubmitEvaluationRequest) (*models.Evaluation, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid evaluation payload")
	}
	if req.Score < 0 || req.Score > 100 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "score must be between 0 and 100")
	}
	if err := checkOutcomeRefs(ctx, s.requests, s.events, req.RequestID, req.EventID); err != nil {
		return nil, err
	}

	evaluation := &models.Evaluation{
		RequestID:   req.RequestID,
		EventID:     req.EventID,
		Score:       req.Score,
		Methodology: req.Methodology,
		Comments:    req.Comments,
	}
	if err := s.evaluations.Create(ctx, evaluation); err != nil {
		return nil, storeError(err, "failed to create evaluation")
	}
	s.logger.Info("evaluation submitted", zap.String("evaluation_id", evaluation.ID))
	return evaluation, nil
}

// List returns evaluations matching the query, paginated.
func (s *EvaluationService) List(ctx context.Context, query dto.OutcomeQuery) ([]models.Evaluation, *models.Pagination, error) {
	filter := models.OutcomeFilter{
		RequestID: query.RequestID,
		EventID:   query.EventID,
		Page:      query.Page,
		PageSize:  query.PageSize,
	}
	evaluations, total, err := s.evaluations.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list evaluations")
	}
	return evaluations, newPagination(filter.Page, filter.PageSize, total), nil
}
