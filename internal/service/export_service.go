package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/unifiedhq/usp-api/internal/dto"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
	"github.com/unifiedhq/usp-api/pkg/export"
)

type requestLister interface {
	List(ctx context.Context, query dto.RequestQuery) ([]models.ProgramRequest, *models.Pagination, error)
}

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Content     []byte
	ContentType string
	Filename    string
}

// ExportService renders the program request register as CSV or PDF.
type ExportService struct {
	requests requestLister
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
}

// NewExportService constructs the service.
func NewExportService(requests requestLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		requests: requests,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
	}
}

var registerHeaders = []string{"ID", "Branch", "Title", "Type", "Status", "Budget Total", "Created At"}

// RequestRegister exports requests matching the query in the given format.
func (s *ExportService) RequestRegister(ctx context.Context, query dto.RequestQuery, format string) (*ExportFile, error) {
	if format != "csv" && format != "pdf" {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	// Walk the register page by page; listings are capped per page.
	query.PageSize = 100
	query.Page = 1
	var requests []models.ProgramRequest
	for {
		batch, _, err := s.requests.List(ctx, query)
		if err != nil {
			return nil, err
		}
		requests = append(requests, batch...)
		if len(batch) < query.PageSize {
			break
		}
		query.Page++
	}

	dataset := export.Dataset{Headers: registerHeaders, Rows: make([]map[string]string, 0, len(requests))}
	for _, request := range requests {
		total := 0.0
		for _, item := range request.Budget {
			total += item.Amount
		}
		dataset.Rows = append(dataset.Rows, map[string]string{
			"ID":           request.ID,
			"Branch":       request.BranchCode,
			"Title":        request.ProgramTitle,
			"Type":         string(request.ProgramType),
			"Status":       string(request.Status),
			"Budget Total": fmt.Sprintf("%.2f", total),
			"Created At":   request.CreatedAt.Format(time.RFC3339),
		})
	}

	stamp := time.Now().UTC().Format("20060102")
	switch format {
	case "csv":
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "text/csv",
			Filename:    fmt.Sprintf("request-register-%s.csv", stamp),
		}, nil
	default:
		content, err := s.pdf.Render(dataset, "Program Request Register")
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return &ExportFile{
			Content:     content,
			ContentType: "application/pdf",
			Filename:    fmt.Sprintf("request-register-%s.pdf", stamp),
		}, nil
	}
}
