package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

// approvalRepoStub mimics the guarded transactional write: the status flip
// only lands when the current status is in the allowed set.
type approvalRepoStub struct {
	mu       sync.Mutex
	statuses map[string]models.RequestStatus
	created  []*models.Approval
}

func (s *approvalRepoStub) CreateWithStatus(ctx context.Context, approval *models.Approval, target models.RequestStatus, allowed []models.RequestStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.statuses[approval.RequestID]
	if !ok {
		return docstore.ErrNoDocument
	}
	permitted := false
	for _, status := range allowed {
		if status == current {
			permitted = true
			break
		}
	}
	if !permitted {
		return docstore.ErrConditionFailed
	}
	s.statuses[approval.RequestID] = target
	approval.ID = "appr-1"
	s.created = append(s.created, approval)
	return nil
}

func (s *approvalRepoStub) List(ctx context.Context, filter models.ApprovalFilter) ([]models.Approval, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := []models.Approval{}
	for _, approval := range s.created {
		if filter.RequestID != "" && approval.RequestID != filter.RequestID {
			continue
		}
		result = append(result, *approval)
	}
	return result, len(result), nil
}

type notifierStub struct {
	mu    sync.Mutex
	calls int
}

func (s *notifierStub) NotifyDecision(ctx context.Context, request *models.ProgramRequest, decision models.Decision) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
}

func TestApprovalServiceRecordApproves(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", BranchCode: "BR-01", Status: models.RequestStatusSubmitted},
	}}
	approvals := &approvalRepoStub{statuses: map[string]models.RequestStatus{"req-1": models.RequestStatusSubmitted}}
	svc := NewApprovalService(approvals, requests, nil, nil)

	approval, err := svc.Record(context.Background(), dto.RecordApprovalRequest{
		RequestID:  "req-1",
		ApprovedBy: "reviewer@example.com",
		Decision:   models.DecisionApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, "appr-1", approval.ID)
	assert.Equal(t, models.RequestStatusApproved, approvals.statuses["req-1"])
}

func TestApprovalServiceRecordRejectsDecidedRequest(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", Status: models.RequestStatusApproved},
	}}
	approvals := &approvalRepoStub{statuses: map[string]models.RequestStatus{"req-1": models.RequestStatusApproved}}
	svc := NewApprovalService(approvals, requests, nil, nil)

	_, err := svc.Record(context.Background(), dto.RecordApprovalRequest{
		RequestID:  "req-1",
		ApprovedBy: "reviewer@example.com",
		Decision:   models.DecisionRejected,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
	assert.Equal(t, models.RequestStatusApproved, approvals.statuses["req-1"])
	assert.Empty(t, approvals.created)
}

func TestApprovalServiceRecordMissingRequest(t *testing.T) {
	svc := NewApprovalService(&approvalRepoStub{statuses: map[string]models.RequestStatus{}}, &requestRepoStub{}, nil, nil)

	_, err := svc.Record(context.Background(), dto.RecordApprovalRequest{
		RequestID:  "missing",
		ApprovedBy: "reviewer@example.com",
		Decision:   models.DecisionApproved,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApprovalServiceRecordRejectsUnknownDecision(t *testing.T) {
	svc := NewApprovalService(&approvalRepoStub{}, &requestRepoStub{}, nil, nil)

	_, err := svc.Record(context.Background(), dto.RecordApprovalRequest{
		RequestID:  "req-1",
		ApprovedBy: "reviewer@example.com",
		Decision:   models.Decision("maybe"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApprovalServiceConcurrentDecisionsOneWins(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", Status: models.RequestStatusSubmitted},
	}}
	approvals := &approvalRepoStub{statuses: map[string]models.RequestStatus{"req-1": models.RequestStatusSubmitted}}
	svc := NewApprovalService(approvals, requests, nil, nil)

	decisions := []models.Decision{models.DecisionApproved, models.DecisionRejected}
	errs := make([]error, len(decisions))
	var wg sync.WaitGroup
	for i, decision := range decisions {
		wg.Add(1)
		go func(i int, decision models.Decision) {
			defer wg.Done()
			_, errs[i] = svc.Record(context.Background(), dto.RecordApprovalRequest{
				RequestID:  "req-1",
				ApprovedBy: "reviewer@example.com",
				Decision:   decision,
			})
		}(i, decision)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.Equal(t, appErrors.ErrInvalidTransition.Code, appErrors.FromError(err).Code)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, approvals.created, 1)
	final := approvals.statuses["req-1"]
	assert.True(t, final == models.RequestStatusApproved || final == models.RequestStatusRejected)
}

func TestApprovalServiceNotifiesOnDecision(t *testing.T) {
	requests := &requestRepoStub{byID: map[string]*models.ProgramRequest{
		"req-1": {ID: "req-1", BranchCode: "BR-01", Status: models.RequestStatusSubmitted},
	}}
	approvals := &approvalRepoStub{statuses: map[string]models.RequestStatus{"req-1": models.RequestStatusSubmitted}}
	notifier := &notifierStub{}
	svc := NewApprovalService(approvals, requests, notifier, nil)

	_, err := svc.Record(context.Background(), dto.RecordApprovalRequest{
		RequestID:  "req-1",
		ApprovedBy: "reviewer@example.com",
		Decision:   models.DecisionApproved,
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return notifier.calls == 1
	}, time.Second, 10*time.Millisecond)
}

func TestApprovalServiceList(t *testing.T) {
	approvals := &approvalRepoStub{
		statuses: map[string]models.RequestStatus{},
		created: []*models.Approval{
			{ID: "a", RequestID: "req-1"},
			{ID: "b", RequestID: "req-2"},
		},
	}
	svc := NewApprovalService(approvals, &requestRepoStub{}, nil, nil)

	result, pagination, err := svc.List(context.Background(), dto.ApprovalQuery{RequestID: "req-1"})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "a", result[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)
}
