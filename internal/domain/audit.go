package domain

import "time"

// AuditEntry records one dispatch attempt, success or failure. Entries are
// append-only and written best-effort.
type AuditEntry struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Entity    string         `json:"entity"`
	Payload   map[string]any `json:"payload,omitempty"`
	Result    any            `json:"result,omitempty"`
	Success   bool           `json:"success"`
	CreatedAt time.Time      `json:"created_at"`
}
