package docstore

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	collection TEXT NOT NULL,
	id TEXT NOT NULL,
	body JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (collection, id)
);
CREATE INDEX IF NOT EXISTS documents_body_idx ON documents USING GIN (body jsonb_path_ops);
CREATE INDEX IF NOT EXISTS documents_order_idx ON documents (collection, created_at, id);`

// QueryObserver receives per-operation store timings.
type QueryObserver func(op string, duration time.Duration)

// PostgresStore implements Store on a single JSONB table, one logical
// collection per entity type.
type PostgresStore struct {
	db      *sqlx.DB
	ext     sqlx.ExtContext
	timeout time.Duration
	observe QueryObserver
}

// PostgresOption configures the store.
type PostgresOption func(*PostgresStore)

// WithTimeout sets the default deadline applied to store calls that arrive
// without one.
func WithTimeout(d time.Duration) PostgresOption {
	return func(s *PostgresStore) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithObserver registers a timing observer for store operations.
func WithObserver(obs QueryObserver) PostgresOption {
	return func(s *PostgresStore) {
		s.observe = obs
	}
}

// NewPostgresStore constructs the store over an open connection pool.
func NewPostgresStore(db *sqlx.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, ext: db, timeout: 5 * time.Second}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// EnsureSchema creates the documents table and its indexes.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if _, err := s.ext.ExecContext(ctx, schema); err != nil {
		return s.mapErr("ensure schema", err)
	}
	return nil
}

// Ping reports backing store connectivity.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return nil
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		return s.mapErr("ping", err)
	}
	return nil
}

// Create implements Store.
func (s *PostgresStore) Create(ctx context.Context, collection string, doc any) (string, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal %s document: %w", collection, err)
	}
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return "", fmt.Errorf("decode %s document: %w", collection, err)
	}
	id := uuid.NewString()
	fields["id"] = id
	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode %s document: %w", collection, err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	_, err = s.ext.ExecContext(ctx,
		`INSERT INTO documents (collection, id, body, created_at) VALUES ($1, $2, $3, $4)`,
		collection, id, body, time.Now().UTC())
	s.observed("create", start)
	if err != nil {
		return "", s.mapErr("create "+collection, err)
	}
	return id, nil
}

// FindByID implements Store.
func (s *PostgresStore) FindByID(ctx context.Context, collection, id string, out any) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	var body []byte
	err := s.ext.QueryRowxContext(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&body)
	s.observed("find_by_id", start)
	if err != nil {
		return s.mapErr("find "+collection+" by id", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode %s document: %w", collection, err)
	}
	return nil
}

// Find implements Store.
func (s *PostgresStore) Find(ctx context.Context, collection string, q Query, out any) error {
	query, args := buildSelect(collection, q)

	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	rows, err := s.ext.QueryxContext(ctx, query, args...)
	s.observed("find", start)
	if err != nil {
		return s.mapErr("find "+collection, err)
	}
	defer rows.Close()

	bodies := make([]string, 0, 16)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return s.mapErr("scan "+collection, err)
		}
		bodies = append(bodies, string(body))
	}
	if err := rows.Err(); err != nil {
		return s.mapErr("iterate "+collection, err)
	}
	joined := "[" + strings.Join(bodies, ",") + "]"
	if err := json.Unmarshal([]byte(joined), out); err != nil {
		return fmt.Errorf("decode %s documents: %w", collection, err)
	}
	return nil
}

// Count implements Store.
func (s *PostgresStore) Count(ctx context.Context, collection string, conds []Cond) (int, error) {
	query, args := buildSelect(collection, Query{Conds: conds})
	query = strings.Replace(query, "SELECT body", "SELECT COUNT(*)", 1)
	query = strings.TrimSuffix(query, " ORDER BY created_at, id")

	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	var total int
	err := sqlx.GetContext(ctx, s.ext, &total, query, args...)
	s.observed("count", start)
	if err != nil {
		return 0, s.mapErr("count "+collection, err)
	}
	return total, nil
}

// UpdateOne implements Store.
func (s *PostgresStore) UpdateOne(ctx context.Context, collection, id string, patch map[string]any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", collection, err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	res, err := s.ext.ExecContext(ctx,
		`UPDATE documents SET body = body || $3 WHERE collection = $1 AND id = $2`,
		collection, id, body)
	s.observed("update_one", start)
	if err != nil {
		return s.mapErr("update "+collection, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.mapErr("update "+collection, err)
	}
	if affected == 0 {
		return ErrNoDocument
	}
	return nil
}

// UpdateOneIf implements Store. The guard predicate decides races: when two
// writers contend, the one that commits first flips the guard field and the
// second sees zero affected rows.
func (s *PostgresStore) UpdateOneIf(ctx context.Context, collection, id, guardField string, allowed []string, patch map[string]any) error {
	body, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("encode %s patch: %w", collection, err)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	start := time.Now()
	query := fmt.Sprintf(
		`UPDATE documents SET body = body || $3 WHERE collection = $1 AND id = $2 AND body->>'%s' = ANY($4)`,
		guardField)
	res, err := s.ext.ExecContext(ctx, query, collection, id, body, pq.Array(allowed))
	s.observed("update_one_if", start)
	if err != nil {
		return s.mapErr("guarded update "+collection, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return s.mapErr("guarded update "+collection, err)
	}
	if affected > 0 {
		return nil
	}

	var exists bool
	err = sqlx.GetContext(ctx, s.ext, &exists,
		`SELECT EXISTS (SELECT 1 FROM documents WHERE collection = $1 AND id = $2)`,
		collection, id)
	if err != nil {
		return s.mapErr("guarded update "+collection, err)
	}
	if !exists {
		return ErrNoDocument
	}
	return ErrConditionFailed
}

// Atomic implements Store. Nested calls reuse the enclosing transaction.
func (s *PostgresStore) Atomic(ctx context.Context, fn func(tx Store) error) error {
	if s.db == nil {
		return fn(s)
	}

	ctx, cancel := s.bound(ctx)
	defer cancel()
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return s.mapErr("begin transaction", err)
	}
	txStore := &PostgresStore{ext: tx, timeout: s.timeout, observe: s.observe}
	if err := fn(txStore); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return s.mapErr("commit transaction", err)
	}
	return nil
}

func (s *PostgresStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.timeout)
}

func (s *PostgresStore) observed(op string, start time.Time) {
	if s.observe != nil {
		s.observe(op, time.Since(start))
	}
}

func (s *PostgresStore) mapErr(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return ErrNoDocument
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, driver.ErrBadConn):
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Cond field names come from enumerated filter structs, never caller input,
// so interpolating them is bounded.
func buildSelect(collection string, q Query) (string, []interface{}) {
	builder := strings.Builder{}
	builder.WriteString("SELECT body FROM documents WHERE collection = $1")
	args := []interface{}{collection}
	for _, cond := range q.Conds {
		args = append(args, cond.Value)
		builder.WriteString(fmt.Sprintf(" AND body->>'%s' = $%d", cond.Field, len(args)))
	}
	builder.WriteString(" ORDER BY created_at, id")
	if q.Limit > 0 {
		builder.WriteString(fmt.Sprintf(" LIMIT %d", q.Limit))
	}
	if q.Offset > 0 {
		builder.WriteString(fmt.Sprintf(" OFFSET %d", q.Offset))
	}
	return builder.String(), args
}
