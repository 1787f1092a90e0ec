package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractFacts(t *testing.T) {
	tests := []struct {
		name string
		text string
		want map[string]any
	}{
		{
			name: "mixed types",
			text: "status: Approved, amount=1200, start_date: 2024-01-15",
			want: map[string]any{
				"status":     "Approved",
				"amount":     float64(1200),
				"start_date": "2024-01-15",
			},
		},
		{
			name: "truthy and falsy words",
			text: "approved: yes, reimbursed: denied",
			want: map[string]any{
				"approved":   true,
				"reimbursed": false,
			},
		},
		{
			name: "quoted value keeps punctuation",
			text: `notes: "late, with receipts"`,
			want: map[string]any{"notes": "late, with receipts"},
		},
		{
			name: "keys are lower-cased",
			text: "Title: Backend Engineer",
			want: map[string]any{"title": "Backend Engineer"},
		},
		{
			name: "dotted keys",
			text: "budget.amount= 500",
			want: map[string]any{"budget.amount": float64(500)},
		},
		{
			name: "no matches",
			text: "nothing to see here",
			want: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractFacts(tt.text))
		})
	}
}

func TestExtractFactsValueStopsAtSeparator(t *testing.T) {
	facts := ExtractFacts("department: Engineering; lead: Ana Gomez\nstatus: open")

	assert.Equal(t, "Engineering", facts["department"])
	assert.Equal(t, "Ana Gomez", facts["lead"])
	assert.Equal(t, "open", facts["status"])
}

func TestMergeExplicitWins(t *testing.T) {
	extracted := map[string]any{"status": "Open", "amount": float64(10)}
	explicit := map[string]any{"status": "Closed"}

	merged := Merge(extracted, explicit)

	assert.Equal(t, "Closed", merged["status"])
	assert.Equal(t, float64(10), merged["amount"])
	// inputs untouched
	assert.Equal(t, "Open", extracted["status"])
}

func TestCoerceValueCase(t *testing.T) {
	// capitalized words are not booleans, lowercase forms are
	assert.Equal(t, "Approved", coerceValue("Approved"))
	assert.Equal(t, true, coerceValue("approved"))
	assert.Equal(t, false, coerceValue("no"))
}
