package docstore

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(sqlx.NewDb(db, "sqlmock")), mock
}

type sampleDoc struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func TestPostgresStoreCreateAssignsID(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("programrequest", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := store.Create(context.Background(), "programrequest", sampleDoc{Title: "Beach cleanup"})
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindByID(t *testing.T) {
	store, mock := newMockStore(t)

	body, _ := json.Marshal(sampleDoc{ID: "doc-1", Title: "Beach cleanup"})
	mock.ExpectQuery(`SELECT body FROM documents WHERE collection = \$1 AND id = \$2`).
		WithArgs("programrequest", "doc-1").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(body))

	var out sampleDoc
	require.NoError(t, store.FindByID(context.Background(), "programrequest", "doc-1", &out))
	assert.Equal(t, "Beach cleanup", out.Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindByIDMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT body FROM documents WHERE collection = \$1 AND id = \$2`).
		WithArgs("programrequest", "nope").
		WillReturnRows(sqlmock.NewRows([]string{"body"}))

	var out sampleDoc
	err := store.FindByID(context.Background(), "programrequest", "nope", &out)
	assert.ErrorIs(t, err, ErrNoDocument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreFindDecodesDocuments(t *testing.T) {
	store, mock := newMockStore(t)

	first, _ := json.Marshal(sampleDoc{ID: "a", Title: "First"})
	second, _ := json.Marshal(sampleDoc{ID: "b", Title: "Second"})
	mock.ExpectQuery(`SELECT body FROM documents WHERE collection = \$1 AND body->>'status' = \$2 ORDER BY created_at, id LIMIT 20`).
		WithArgs("programrequest", "submitted").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(first).AddRow(second))

	var out []sampleDoc
	q := Query{Conds: []Cond{{Field: "status", Value: "submitted"}}, Limit: 20}
	require.NoError(t, store.Find(context.Background(), "programrequest", q, &out))
	require.Len(t, out, 2)
	assert.Equal(t, "First", out[0].Title)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreCount(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM documents WHERE collection = \$1`).
		WithArgs("programrequest").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := store.Count(context.Background(), "programrequest", nil)
	require.NoError(t, err)
	assert.Equal(t, 7, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateOneMissing(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE documents SET body = body \|\| \$3`).
		WithArgs("notification", "nope", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateOne(context.Background(), "notification", "nope", map[string]any{"is_read": true})
	assert.ErrorIs(t, err, ErrNoDocument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateOneIfGuardLoss(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE documents SET body = body \|\| \$3 WHERE collection = \$1 AND id = \$2 AND body->>'status' = ANY\(\$4\)`).
		WithArgs("programrequest", "req-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("programrequest", "req-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	err := store.UpdateOneIf(context.Background(), "programrequest", "req-1", "status",
		[]string{"submitted", "under_review"}, map[string]any{"status": "approved"})
	assert.ErrorIs(t, err, ErrConditionFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUpdateOneIfMissingDocument(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec(`UPDATE documents SET body = body \|\| \$3`).
		WithArgs("programrequest", "nope", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("programrequest", "nope").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := store.UpdateOneIf(context.Background(), "programrequest", "nope", "status",
		[]string{"submitted"}, map[string]any{"status": "approved"})
	assert.ErrorIs(t, err, ErrNoDocument)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreAtomicCommits(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("approval", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE documents SET body = body \|\| \$3`).
		WithArgs("programrequest", "req-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := store.Atomic(context.Background(), func(tx Store) error {
		if _, err := tx.Create(context.Background(), "approval", sampleDoc{Title: "decision"}); err != nil {
			return err
		}
		return tx.UpdateOneIf(context.Background(), "programrequest", "req-1", "status",
			[]string{"submitted", "under_review"}, map[string]any{"status": "approved"})
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreAtomicRollsBackOnGuardLoss(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO documents`).
		WithArgs("approval", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE documents SET body = body \|\| \$3`).
		WithArgs("programrequest", "req-1", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("programrequest", "req-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	err := store.Atomic(context.Background(), func(tx Store) error {
		if _, err := tx.Create(context.Background(), "approval", sampleDoc{Title: "decision"}); err != nil {
			return err
		}
		return tx.UpdateOneIf(context.Background(), "programrequest", "req-1", "status",
			[]string{"submitted", "under_review"}, map[string]any{"status": "approved"})
	})
	assert.ErrorIs(t, err, ErrConditionFailed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreTimeoutMapsToUnavailable(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT body FROM documents`).
		WithArgs("programrequest", "doc-1").
		WillReturnError(context.DeadlineExceeded)

	var out sampleDoc
	err := store.FindByID(context.Background(), "programrequest", "doc-1", &out)
	assert.ErrorIs(t, err, ErrUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildSelectPaginates(t *testing.T) {
	query, args := buildSelect("event", Query{
		Conds:  []Cond{{Field: "branch_code", Value: "BR-01"}, {Field: "status", Value: "scheduled"}},
		Limit:  20,
		Offset: 40,
	})
	assert.Equal(t,
		"SELECT body FROM documents WHERE collection = $1 AND body->>'branch_code' = $2 AND body->>'status' = $3 ORDER BY created_at, id LIMIT 20 OFFSET 40",
		query)
	assert.Equal(t, []interface{}{"event", "BR-01", "scheduled"}, args)
}
