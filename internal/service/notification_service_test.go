package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type notificationRepoStub struct {
	created []*models.Notification
	read    []string
}

func (s *notificationRepoStub) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = "ntf-1"
	s.created = append(s.created, notification)
	return nil
}

func (s *notificationRepoStub) List(ctx context.Context, filter models.NotificationFilter) ([]models.Notification, int, error) {
	result := []models.Notification{}
	for _, notification := range s.created {
		result = append(result, *notification)
	}
	return result, len(result), nil
}

func (s *notificationRepoStub) MarkRead(ctx context.Context, id string) error {
	for _, notification := range s.created {
		if notification.ID == id {
			notification.IsRead = true
			s.read = append(s.read, id)
			return nil
		}
	}
	return docstore.ErrNoDocument
}

func TestNotificationServiceCreateDefaultsType(t *testing.T) {
	repo := &notificationRepoStub{}
	svc := NewNotificationService(repo, nil)

	notification, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		BranchCode: strPtr("BR-01"),
		Title:      "Heads up",
		Message:    "Quarterly review next week.",
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationInfo, notification.Type)
	assert.False(t, notification.IsRead)
}

func TestNotificationServiceCreateRejectsUnknownType(t *testing.T) {
	svc := NewNotificationService(&notificationRepoStub{}, nil)

	_, err := svc.Create(context.Background(), dto.CreateNotificationRequest{
		Title:   "Heads up",
		Message: "Body",
		Type:    models.NotificationType("urgent"),
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceMarkReadNotFound(t *testing.T) {
	svc := NewNotificationService(&notificationRepoStub{}, nil)

	err := svc.MarkRead(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestNotificationServiceNotifyDecisionTargetsBranch(t *testing.T) {
	repo := &notificationRepoStub{}
	svc := NewNotificationService(repo, nil)

	request := &models.ProgramRequest{
		ID:           "req-1",
		BranchCode:   "BR-01",
		ProgramTitle: "Beach cleanup",
		RequestedBy:  strPtr("dana@example.com"),
		Status:       models.RequestStatusApproved,
	}
	svc.NotifyDecision(context.Background(), request, models.DecisionApproved)

	require.Len(t, repo.created, 1)
	notification := repo.created[0]
	require.NotNil(t, notification.BranchCode)
	assert.Equal(t, "BR-01", *notification.BranchCode)
	assert.Equal(t, models.NotificationSuccess, notification.Type)

	svc.NotifyDecision(context.Background(), request, models.DecisionRejected)
	require.Len(t, repo.created, 2)
	assert.Equal(t, models.NotificationWarning, repo.created[1].Type)
}
