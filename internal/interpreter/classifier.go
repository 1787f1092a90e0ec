package interpreter

import (
	"strings"

	"github.com/opsdesk/opsdesk/internal/domain"
)

// intentKeywords is evaluated in declaration order; the first intent with a
// keyword appearing in the text wins. No scoring, no ambiguity resolution.
var intentKeywords = []struct {
	intent   domain.Intent
	keywords []string
}{
	{domain.IntentCreate, []string{"create", "add", "log", "open", "new", "start"}},
	{domain.IntentRead, []string{"list", "show", "get", "fetch", "view", "find"}},
	{domain.IntentUpdate, []string{"update", "edit", "set", "change", "modify"}},
	{domain.IntentDelete, []string{"delete", "remove", "archive", "drop"}},
}

// ClassifyIntent maps command text to one of the fixed action vocabulary.
// The second return is false when no keyword matches.
func ClassifyIntent(text string) (domain.Intent, bool) {
	lowered := strings.ToLower(text)
	for _, entry := range intentKeywords {
		for _, keyword := range entry.keywords {
			if strings.Contains(lowered, keyword) {
				return entry.intent, true
			}
		}
	}
	return "", false
}

// ClassifyEntity maps command text to one of the declared entity descriptors.
// Descriptors are checked in declaration order since keyword sets overlap.
func ClassifyEntity(text string) (*domain.EntityDescriptor, bool) {
	lowered := strings.ToLower(text)
	for i := range domain.Descriptors {
		for _, keyword := range domain.Descriptors[i].Keywords {
			if strings.Contains(lowered, keyword) {
				return &domain.Descriptors[i], true
			}
		}
	}
	return nil, false
}
