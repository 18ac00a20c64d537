package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

type requestListerStub struct {
	requests []models.ProgramRequest
}

func (s *requestListerStub) List(ctx context.Context, query dto.RequestQuery) ([]models.ProgramRequest, *models.Pagination, error) {
	return s.requests, newPagination(query.Page, query.PageSize, len(s.requests)), nil
}

func TestExportServiceRequestRegisterCSV(t *testing.T) {
	lister := &requestListerStub{requests: []models.ProgramRequest{
		{
			ID:           "req-1",
			BranchCode:   "BR-01",
			ProgramTitle: "Beach cleanup",
			ProgramType:  models.ProgramCommunityService,
			Status:       models.RequestStatusApproved,
			Budget:       []models.BudgetItem{{Name: "supplies", Amount: 120.5}, {Name: "transport", Amount: 79.5}},
			CreatedAt:    time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
		},
	}}
	svc := NewExportService(lister, nil)

	file, err := svc.RequestRegister(context.Background(), dto.RequestQuery{}, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, strings.HasSuffix(file.Filename, ".csv"))

	body := string(file.Content)
	assert.Contains(t, body, "Beach cleanup")
	assert.Contains(t, body, "200.00")
	assert.Contains(t, body, "BR-01")
}

func TestExportServiceRequestRegisterPDF(t *testing.T) {
	svc := NewExportService(&requestListerStub{}, nil)

	file, err := svc.RequestRegister(context.Background(), dto.RequestQuery{}, "pdf")
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.NotEmpty(t, file.Content)
}

func TestExportServiceRequestRegisterRejectsUnknownFormat(t *testing.T) {
	svc := NewExportService(&requestListerStub{}, nil)

	_, err := svc.RequestRegister(context.Background(), dto.RequestQuery{}, "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
