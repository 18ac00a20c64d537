// Package docstore provides the narrow document-store contract the lifecycle
// services are written against: collections of JSON documents keyed by a
// store-generated identity, with exact-match secondary-index filtering and a
// conditional update primitive for optimistic concurrency.
package docstore

import (
	"context"
	"errors"
)

// Collection names, lowercase entity names by convention.
const (
	CollectionBranch         = "branch"
	CollectionRole           = "role"
	CollectionUser           = "user"
	CollectionProgramRequest = "programrequest"
	CollectionApproval       = "approval"
	CollectionResource       = "resource"
	CollectionEvent          = "event"
	CollectionReport         = "report"
	CollectionEvaluation     = "evaluation"
	CollectionNotification   = "notification"
)

// Sentinel errors surfaced by store implementations.
var (
	// ErrNoDocument indicates the identity does not resolve in the collection.
	ErrNoDocument = errors.New("docstore: document not found")
	// ErrConditionFailed indicates a guarded update matched the identity but
	// not the guard predicate.
	ErrConditionFailed = errors.New("docstore: update condition not met")
	// ErrUnavailable indicates a timeout or connectivity failure talking to
	// the backing store.
	ErrUnavailable = errors.New("docstore: store unavailable")
)

// Cond is an exact-match predicate on a top-level document field.
type Cond struct {
	Field string
	Value string
}

// Query bundles filter conditions with pagination bounds.
type Query struct {
	Conds  []Cond
	Limit  int
	Offset int
}

// Store is the document-store collaborator. Implementations must keep reads
// and writes within caller deadlines and normalise timeouts to
// ErrUnavailable.
type Store interface {
	// Create persists doc in collection and returns the generated identity.
	// The identity is also injected into the stored document under "id".
	Create(ctx context.Context, collection string, doc any) (string, error)
	// FindByID unmarshals the document with the given identity into out.
	FindByID(ctx context.Context, collection, id string, out any) error
	// Find unmarshals all documents matching q into out (a pointer to a
	// slice), in stable insertion order.
	Find(ctx context.Context, collection string, q Query, out any) error
	// Count returns the number of documents matching the conditions.
	Count(ctx context.Context, collection string, conds []Cond) (int, error)
	// UpdateOne merges patch into the document with the given identity.
	UpdateOne(ctx context.Context, collection, id string, patch map[string]any) error
	// UpdateOneIf merges patch only when the document's guardField currently
	// holds one of the allowed values. Returns ErrConditionFailed when the
	// document exists but the guard does not match.
	UpdateOneIf(ctx context.Context, collection, id, guardField string, allowed []string, patch map[string]any) error
	// Atomic runs fn against a transactional view of the store; all writes
	// commit together or not at all.
	Atomic(ctx context.Context, fn func(tx Store) error) error
}
