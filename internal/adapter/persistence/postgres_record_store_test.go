package persistence

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsdesk/opsdesk/internal/domain"
)

func newMockStore(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresRecordStore) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock, &PostgresRecordStore{db: db}
}

func recordRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "data", "created_at", "updated_at"})
}

func TestSelectPartialAndExactFilters(t *testing.T) {
	_, mock, store := newMockStore(t)
	now := time.Now()

	// sorted filter keys: amount (exact), category (partial ILIKE)
	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT id, data, created_at, updated_at FROM expense_claims WHERE 1=1"+
			" AND data->>'amount' = $1 AND data->>'category' ILIKE $2"+
			" ORDER BY created_at DESC LIMIT 100")).
		WithArgs("42", "%Travel%").
		WillReturnRows(recordRows().
			AddRow("exp-1", []byte(`{"category":"Travel","amount":42}`), now, now))

	records, err := store.Select(context.Background(), "expense_claims", map[string]any{
		"category": "Travel",
		"amount":   float64(42),
	})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "exp-1", records[0]["id"])
	assert.Equal(t, "Travel", records[0]["category"])
	assert.Equal(t, float64(42), records[0]["amount"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectShortStringFilterIsExact(t *testing.T) {
	_, mock, store := newMockStore(t)

	// two-character strings fall back to exact equality
	mock.ExpectQuery(regexp.QuoteMeta("data->>'status' = $1")).
		WithArgs("ok").
		WillReturnRows(recordRows())

	records, err := store.Select(context.Background(), "projects", map[string]any{"status": "ok"})

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSelectBooleanFilterIsExact(t *testing.T) {
	_, mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("data->>'approved' = $1")).
		WithArgs("true").
		WillReturnRows(recordRows())

	_, err := store.Select(context.Background(), "leave_requests", map[string]any{"approved": true})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertReturnsStoredRow(t *testing.T) {
	_, mock, store := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO recruitment_jobs (id, data, created_at, updated_at)")).
		WithArgs(sqlmock.AnyArg(), []byte(`{"title":"Backend Engineer"}`)).
		WillReturnRows(recordRows().
			AddRow("job-1", []byte(`{"title":"Backend Engineer"}`), now, now))

	record, err := store.Insert(context.Background(), "recruitment_jobs", map[string]any{
		"title": "Backend Engineer",
	})

	require.NoError(t, err)
	assert.Equal(t, "job-1", record["id"])
	assert.Equal(t, "Backend Engineer", record["title"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByIDMergesPayload(t *testing.T) {
	_, mock, store := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SET data = data || $2::jsonb")).
		WithArgs("abc123", []byte(`{"status":"Closed"}`)).
		WillReturnRows(recordRows().
			AddRow("abc123", []byte(`{"employee_name":"Kim","status":"Closed"}`), now, now))

	record, err := store.UpdateByID(context.Background(), "leave_requests", "abc123", map[string]any{
		"status": "Closed",
	})

	require.NoError(t, err)
	assert.Equal(t, "Closed", record["status"])
	assert.Equal(t, "Kim", record["employee_name"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateByIDNotFound(t *testing.T) {
	_, mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("UPDATE leave_requests")).
		WithArgs("missing", []byte(`{"status":"Closed"}`)).
		WillReturnError(sql.ErrNoRows)

	_, err := store.UpdateByID(context.Background(), "leave_requests", "missing", map[string]any{
		"status": "Closed",
	})

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDReturnsDeletedRow(t *testing.T) {
	_, mock, store := newMockStore(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM projects")).
		WithArgs("proj-1").
		WillReturnRows(recordRows().
			AddRow("proj-1", []byte(`{"name":"Migration"}`), now, now))

	record, err := store.DeleteByID(context.Background(), "projects", "proj-1")

	require.NoError(t, err)
	assert.Equal(t, "proj-1", record["id"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDNotFound(t *testing.T) {
	_, mock, store := newMockStore(t)

	mock.ExpectQuery(regexp.QuoteMeta("DELETE FROM projects")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := store.DeleteByID(context.Background(), "projects", "missing")

	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
