package interpreter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractIdentifier(t *testing.T) {
	const uuid = "550e8400-e29b-41d4-a716-446655440000"

	tests := []struct {
		name   string
		facts  map[string]any
		text   string
		want   string
		wantOK bool
	}{
		{
			name:   "explicit id in facts wins",
			facts:  map[string]any{"id": "rec-999999"},
			text:   "update job id: abc123",
			want:   "rec-999999",
			wantOK: true,
		},
		{
			name:   "numeric explicit id",
			facts:  map[string]any{"id": float64(123456)},
			want:   "123456",
			wantOK: true,
		},
		{
			name:   "id token in text",
			text:   "delete leave request id: " + uuid,
			want:   uuid,
			wantOK: true,
		},
		{
			name:   "record token in text",
			text:   "edit record: abc123 please",
			want:   "abc123",
			wantOK: true,
		},
		{
			name:   "bare uuid in text",
			text:   "remove " + uuid + " from the list",
			want:   uuid,
			wantOK: true,
		},
		{
			name:   "token shorter than six chars ignored",
			text:   "delete id: ab12",
			wantOK: false,
		},
		{
			name:   "no identifier at all",
			text:   "delete the leave request",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractIdentifier(tt.facts, tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}
