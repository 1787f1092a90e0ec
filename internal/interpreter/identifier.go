package interpreter

import (
	"regexp"
	"strconv"
)

var (
	idTokenPattern = regexp.MustCompile(`(?i)\b(?:id|record)\s*[:=]\s*["']?([A-Za-z0-9][A-Za-z0-9-]{5,})`)
	uuidPattern    = regexp.MustCompile(`(?i)\b[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\b`)
)

// ExtractIdentifier locates the record identifier a command targets. An
// explicit identifier in the merged facts wins; otherwise the text is
// searched for an id:/record: token, then for a bare UUID-shaped substring.
func ExtractIdentifier(facts map[string]any, text string) (string, bool) {
	for _, key := range []string{"id", "record_id", "record"} {
		v, ok := facts[key]
		if !ok || v == nil {
			continue
		}
		switch id := v.(type) {
		case string:
			if id != "" {
				return id, true
			}
		case float64:
			return strconv.FormatFloat(id, 'f', -1, 64), true
		}
	}

	if m := idTokenPattern.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	if m := uuidPattern.FindString(text); m != "" {
		return m, true
	}
	return "", false
}
