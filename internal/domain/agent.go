package domain

import "errors"

// Intent is the classified action a command requests.
type Intent string

const (
	IntentCreate Intent = "create"
	IntentRead   Intent = "read"
	IntentUpdate Intent = "update"
	IntentDelete Intent = "delete"
)

// DefaultActor is recorded when a command carries no actor identifier.
const DefaultActor = "agent"

// Command is the raw input to one interpretation cycle. It is not mutated
// while the cycle runs.
type Command struct {
	Text    string         `json:"command"`
	Data    map[string]any `json:"data,omitempty"`
	Actor   string         `json:"actor,omitempty"`
	Confirm bool           `json:"confirm,omitempty"`
}

// Result is the outcome of a successfully dispatched command.
type Result struct {
	Action  Intent `json:"action"`
	Entity  string `json:"entity"`
	Summary string `json:"summary"`
	Data    any    `json:"data"`
}

// ErrRecordNotFound is returned by the record store when an update or delete
// matches no row.
var ErrRecordNotFound = errors.New("record not found")
