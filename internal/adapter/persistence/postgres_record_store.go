package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opsdesk/opsdesk/internal/domain"
	"github.com/opsdesk/opsdesk/internal/ports"
)

// maxSelectRows caps read results regardless of filter selectivity.
const maxSelectRows = 100

// PostgresRecordStore implements RecordStore using PostgreSQL. Every backing
// collection is a table of (id, data jsonb, created_at, updated_at); the
// collection names are taken from the closed entity descriptor table, so they
// are safe to interpolate.
type PostgresRecordStore struct {
	db *sql.DB
}

// NewPostgresRecordStore creates a new PostgreSQL record store.
func NewPostgresRecordStore(db *sql.DB) ports.RecordStore {
	return &PostgresRecordStore{db: db}
}

// Select retrieves rows matching the filters. String filters longer than two
// characters match case-insensitively and partially; everything else matches
// exact on the jsonb text representation.
func (s *PostgresRecordStore) Select(ctx context.Context, collection string, filters map[string]any) ([]map[string]any, error) {
	query := fmt.Sprintf("SELECT id, data, created_at, updated_at FROM %s WHERE 1=1", collection)

	var conditions []string
	var args []interface{}
	argIndex := 1

	// filter keys are canonical field names from the payload builders;
	// sorted for a deterministic query shape
	keys := make([]string, 0, len(filters))
	for key := range filters {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := filters[key]
		if str, ok := value.(string); ok && len(str) > 2 {
			conditions = append(conditions, fmt.Sprintf("data->>'%s' ILIKE $%d", key, argIndex))
			args = append(args, "%"+str+"%")
		} else {
			conditions = append(conditions, fmt.Sprintf("data->>'%s' = $%d", key, argIndex))
			args = append(args, renderFilterValue(value))
		}
		argIndex++
	}

	if len(conditions) > 0 {
		query += " AND " + strings.Join(conditions, " AND ")
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT %d", maxSelectRows)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	var records []map[string]any
	for rows.Next() {
		record, err := scanRecordRow(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", collection, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s rows: %w", collection, err)
	}

	return records, nil
}

// Insert stores a new record and returns the stored row.
func (s *PostgresRecordStore) Insert(ctx context.Context, collection string, payload map[string]any) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, data, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, data, created_at, updated_at
	`, collection)

	record, err := scanRecordRow(s.db.QueryRowContext(ctx, query, uuid.NewString(), data))
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}

	return record, nil
}

// UpdateByID merges the payload into an existing record's jsonb data so that
// unset fields are never clobbered.
func (s *PostgresRecordStore) UpdateByID(ctx context.Context, collection, id string, payload map[string]any) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET data = data || $2::jsonb, updated_at = NOW()
		WHERE id = $1
		RETURNING id, data, created_at, updated_at
	`, collection)

	record, err := scanRecordRow(s.db.QueryRowContext(ctx, query, id, data))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to update %s: %w", collection, err)
	}

	return record, nil
}

// DeleteByID removes a record and returns the deleted row.
func (s *PostgresRecordStore) DeleteByID(ctx context.Context, collection, id string) (map[string]any, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1
		RETURNING id, data, created_at, updated_at
	`, collection)

	record, err := scanRecordRow(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to delete from %s: %w", collection, err)
	}

	return record, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecordRow(row rowScanner) (map[string]any, error) {
	var (
		id        string
		data      []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &data, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	record := map[string]any{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &record); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record data: %w", err)
		}
	}
	record["id"] = id
	record["created_at"] = createdAt
	record["updated_at"] = updatedAt

	return record, nil
}

// renderFilterValue normalizes an exact-match filter to the text form the
// jsonb ->> operator yields.
func renderFilterValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
