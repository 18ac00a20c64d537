// Package service implements the program lifecycle orchestration. Services
// are stateless: every operation reads current state from the document store,
// validates, and writes back.
package service

import (
	"context"
	"errors"

	"github.com/unifiedhq/usp-api/internal/docstore"
	"github.com/unifiedhq/usp-api/internal/models"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

// referenceValidator confirms that reference keys resolve to existing
// records.
type referenceValidator interface {
	BranchExists(ctx context.Context, code string) (bool, error)
	UserExists(ctx context.Context, identifier string) (bool, error)
	ResourceExists(ctx context.Context, id string) (bool, error)
}

// requestReader resolves program requests by identity.
type requestReader interface {
	GetByID(ctx context.Context, id string) (*models.ProgramRequest, error)
}

// eventReader resolves events by identity.
type eventReader interface {
	GetByID(ctx context.Context, id string) (*models.Event, error)
}

// storeError normalises document-store failures: timeouts and connectivity
// problems surface as STORE_UNAVAILABLE, anything else as INTERNAL_ERROR.
func storeError(err error, message string) error {
	if errors.Is(err, docstore.ErrUnavailable) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func newPagination(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
