package interpreter

import (
	"testing"

	"github.com/opsdesk/opsdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		text   string
		want   domain.Intent
		wantOK bool
	}{
		{"create a recruitment job", domain.IntentCreate, true},
		{"log expense claim", domain.IntentCreate, true},
		{"list leave requests", domain.IntentRead, true},
		{"show me the projects", domain.IntentRead, true},
		{"update the claim status", domain.IntentUpdate, true},
		{"set status to closed", domain.IntentUpdate, true},
		{"delete leave request id: abc123", domain.IntentDelete, true},
		{"archive the old requisition", domain.IntentDelete, true},
		{"DELETE the project", domain.IntentDelete, true},
		{"what is the weather", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			intent, ok := ClassifyIntent(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, intent)
		})
	}
}

func TestClassifyIntentFirstMatchWins(t *testing.T) {
	// "add" (create) is declared before "remove" (delete)
	intent, ok := ClassifyIntent("add then remove the project")
	require.True(t, ok)
	assert.Equal(t, domain.IntentCreate, intent)
}

func TestClassifyEntity(t *testing.T) {
	tests := []struct {
		text     string
		wantType domain.EntityType
		wantOK   bool
	}{
		{"create recruitment job title: X", domain.EntityRecruitmentJob, true},
		{"open a new requisition", domain.EntityRecruitmentJob, true},
		{"log an applicant for stage screening", domain.EntityRecruitmentApplication, true},
		{"request time off next week", domain.EntityLeaveRequest, true},
		{"log expense claim", domain.EntityExpenseClaim, true},
		{"start initiative name: Apollo", domain.EntityProject, true},
		{"do something unrelated", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			descriptor, ok := ClassifyEntity(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, descriptor)
				assert.Equal(t, tt.wantType, descriptor.Type)
			} else {
				assert.Nil(t, descriptor)
			}
		})
	}
}

func TestClassifyEntityDeclarationOrderTieBreak(t *testing.T) {
	// "job" belongs to the recruitment job descriptor, which is declared
	// first, so it wins even when application keywords are also present.
	descriptor, ok := ClassifyEntity("show job applications")
	require.True(t, ok)
	assert.Equal(t, domain.EntityRecruitmentJob, descriptor.Type)
}
