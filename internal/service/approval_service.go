package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type approvalStore interface {
	CreateWithStatus(ctx context.Context, approval *models.Approval, target models.RequestStatus, allowed []models.RequestStatus) error
	List(ctx context.Context, filter models.ApprovalFilter) ([]models.Approval, int, error)
}

type decisionNotifier interface {
	NotifyDecision(ctx context.Context, request *models.ProgramRequest, decision models.Decision)
}

// ApprovalService records reviewer decisions. A decision and the request
// status flip it implies commit in one transaction; when two reviewers race,
// the guarded update lets exactly one win.
type ApprovalService struct {
	approvals approvalStore
	requests  requestReader
	notifier  decisionNotifier
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApprovalService constructs the service. notifier may be nil when
// decision notifications are disabled.
func NewApprovalService(approvals approvalStore, requests requestReader, notifier decisionNotifier, logger *zap.Logger) *ApprovalService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApprovalService{
		approvals: approvals,
		requests:  requests,
		notifier:  notifier,
		validator: validator.New(),
		logger:    logger,
	}
}

// Record persists a decision and transitions the referenced request.
func (s *ApprovalService) Record(ctx context.Context, req dto.RecordApprovalRequest) (*models.Approval, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid approval payload")
	}
	if !req.Decision.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported decision %q", req.Decision))
	}

	request, err := s.requests.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, docstore.ErrNoDocument) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program request not found")
		}
		return nil, storeError(err, "failed to fetch program request")
	}

	target := req.Decision.TargetStatus()
	if !request.Status.CanTransition(target) {
		return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
			fmt.Sprintf("cannot move request from %s to %s", request.Status, target))
	}

	approval := &models.Approval{
		RequestID:  req.RequestID,
		ApprovedBy: req.ApprovedBy,
		Decision:   req.Decision,
		Notes:      req.Notes,
	}
	if err := s.approvals.CreateWithStatus(ctx, approval, target, models.RequestPredecessors(target)); err != nil {
		switch {
		case errors.Is(err, docstore.ErrConditionFailed):
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition, "request already decided")
		case errors.Is(err, docstore.ErrNoDocument):
			return nil, appErrors.Clone(appErrors.ErrNotFound, "program request not found")
		default:
			return nil, storeError(err, "failed to record approval")
		}
	}

	s.logger.Info("approval recorded",
		zap.String("approval_id", approval.ID),
		zap.String("request_id", approval.RequestID),
		zap.String("decision", string(approval.Decision)))

	if s.notifier != nil {
		request := *request
		request.Status = target
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			s.notifier.NotifyDecision(ctx, &request, approval.Decision)
		}()
	}
	return approval, nil
}

// List returns approvals matching the query, paginated.
func (s *ApprovalService) List(ctx context.Context, query dto.ApprovalQuery) ([]models.Approval, *models.Pagination, error) {
	filter := models.ApprovalFilter{RequestID: query.RequestID, Page: query.Page, PageSize: query.PageSize}
	approvals, total, err := s.approvals.List(ctx, filter)
	if err != nil {
		return nil, nil, storeError(err, "failed to list approvals")
	}
	return approvals, newPagination(filter.Page, filter.PageSize, total), nil
}
