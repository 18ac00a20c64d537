package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type requestStore interface {
	Create(ctx context.Context, request *models.ProgramRequest) error
	GetByID(ctx context.Context, id string) (*models.ProgramRequest, error)
	List(ctx context.Context, filter models.RequestFilter) ([]models.ProgramRequest, int, error)
}

// RequestService handles program request submission and retrieval. Requests
// always enter the lifecycle as submitted; clients cannot choose an initial
// status.
type RequestService struct {
	requests   requestStore
	references referenceValidator
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewRequestService constructs the service.
func NewRequestService(requests requestStore, references referenceValidator, logger *zap.Logger) *RequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RequestService{
		requests:   requests,
		references: references,
		validator:  validator.New(),
		logger:     logger,
	}
}

// Submit validates and persists a new program request.
func (s *RequestService) Submit(ctx context.Context, req dto.SubmitRequestRequest) (*models.ProgramRequest, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload")
	}
	if !req.ProgramType.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported program type %q", req.ProgramType))
	}

	budget := make([]models.BudgetItem, 0, len(req.Budget))
	for _, item := range req.Budget {
		if item.Amount < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("budget item %q amount must be non-negative", item.Name))
		}
		budget = append(budget, models.BudgetItem{Name: item.Name, Amount: item.Amount})
	}

	exists, err := s.references.BranchExists(ctx, req.BranchCode)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown branch code %q", req.BranchCode))
	}
	if req.RequestedBy != nil && *req.RequestedBy != "" {
		exists, err := s.references.UserExists(ctx, *req.RequestedBy)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown requester %q", *req.RequestedBy))
		}
	}

	request := &models.ProgramRequest{
		BranchCode:   req.BranchCode,
		ProgramTitle: req.ProgramTitle,
		ProgramType:  req.ProgramType,
		Description:  req.Description,
		ProposedDate: req.ProposedDate,
		Location:     req.Location,
		Budget:       budget,
		RequestedBy:  req.RequestedBy,
		Status:       models.RequestStatusSubmitted,
	}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, storeError(err, "failed to create program request")
	}
	s.logger.Info("program request submitted",
		zap.String("request_id", request.ID),
		zap.String("branch_code", request.BranchCode),
		zap.String("program_type", string(request.ProgramType)))
	return request, nil
}

// Get fetches a single request by identifier.
func (s *RequestService) Get(ctx context.Context, id string) (*models.ProgramRequest, error) {
	request, err := s.requests.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program request not found")
		}
		return nil, storeError(err, "failed to fetch program request")
	}
	return request, nil
}

// List returns requests matching the query, paginated.
func (s *RequestService) List(ctx context.Context, query dto.RequestQuery) ([]models.ProgramRequest, *models.Pagination, error) {
	filter := models.RequestFilter{
		BranchCode: query.BranchCode,
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	if query.Status != "" {
		status := models.RequestStatus(query.Status)
		if !status.Valid() {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported status filter %q", query.Status))
		}
		filter.Status = status
	}

	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list program requests")
	}
	return requests, newPagination(filter.Page, filter.PageSize, total), nil
}
