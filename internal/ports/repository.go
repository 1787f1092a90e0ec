package ports

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/domain"
)

// RecordStore is the generic record-access interface over the backing
// collections. Collection names come from the closed entity descriptor
// table, never from user input.
type RecordStore interface {
	// Select returns rows matching the filters. String filters longer than
	// two characters match partially and case-insensitively; all other
	// filters match exact. Results are capped at 100 rows.
	Select(ctx context.Context, collection string, filters map[string]any) ([]map[string]any, error)

	// Insert stores a new record and returns the stored row.
	Insert(ctx context.Context, collection string, payload map[string]any) (map[string]any, error)

	// UpdateByID merges the payload into the record with the given id.
	// Returns domain.ErrRecordNotFound when no row matched.
	UpdateByID(ctx context.Context, collection, id string, payload map[string]any) (map[string]any, error)

	// DeleteByID removes the record with the given id and returns it.
	// Returns domain.ErrRecordNotFound when no row matched.
	DeleteByID(ctx context.Context, collection, id string) (map[string]any, error)
}

// AuditRepository defines the interface for audit log persistence.
type AuditRepository interface {
	// Create appends a new audit entry.
	Create(ctx context.Context, entry *domain.AuditEntry) error

	// List retrieves the most recent audit entries.
	List(ctx context.Context, limit int) ([]*domain.AuditEntry, error)
}
