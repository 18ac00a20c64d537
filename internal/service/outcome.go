package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/unifiedhq/usp-api/internal/docstore"
	appErrors "github.com/unifiedhq/usp-api/pkg/errors"
)

// checkOutcomeRefs resolves the optional request and event references on an
// outcome submission. When both are present the event must belong to the
// request, otherwise the submission is rejected as inconsistent.
func checkOutcomeRefs(ctx context.Context, requests requestReader, events eventReader, requestID, eventID *string) error {
	if requestID != nil && *requestID != "" {
		if _, err := requests.GetByID(ctx, *requestID); err != nil {
			if errors.Is(err, docstore.ErrNoDocument) {
				return appErrors.Clone(appErrors.ErrNotFound, "program request not found")
			}
			return storeError(err, "failed to fetch program request")
		}
	}
	if eventID != nil && *eventID != "" {
		event, err := events.GetByID(ctx, *eventID)
		if err != nil {
			if errors.Is(err, docstore.ErrNoDocument) {
				return appErrors.Clone(appErrors.ErrNotFound, "event not found")
			}
			return storeError(err, "failed to fetch event")
		}
		if requestID != nil && *requestID != "" && event.RequestID != nil && *event.RequestID != *requestID {
			return appErrors.Clone(appErrors.ErrInconsistentReference,
				fmt.Sprintf("event %s belongs to request %s, not %s", *eventID, *event.RequestID, *requestID))
		}
	}
	return nil
}
