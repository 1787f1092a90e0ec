// Package interpreter turns free-form command text into typed facts, a
// classified intent, and a target entity. Everything here is deterministic
// and keyword/regex driven; there is no statistical model behind it.
package interpreter

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	// key: value / key=value pairs; the value is either quoted or runs up
	// to the next comma, semicolon, or newline.
	factPattern    = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_.]*)\s*[:=]\s*("[^"]*"|'[^']*'|[^,;\n]+)`)
	isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ExtractFacts scans text for key-value tokens and returns them as a typed
// fact set. Keys are lower-cased. Returns an empty map when nothing matches.
func ExtractFacts(text string) map[string]any {
	facts := map[string]any{}
	for _, match := range factPattern.FindAllStringSubmatch(text, -1) {
		key := strings.ToLower(match[1])
		facts[key] = coerceValue(match[2])
	}
	return facts
}

// Merge overlays explicit structured data on top of text-extracted facts.
// Explicit values win on key conflicts; neither input map is modified.
func Merge(extracted, explicit map[string]any) map[string]any {
	merged := make(map[string]any, len(extracted)+len(explicit))
	for k, v := range extracted {
		merged[k] = v
	}
	for k, v := range explicit {
		merged[k] = v
	}
	return merged
}

// coerceValue applies lightweight typing: ISO date (kept as string), finite
// number, truthy/falsy word, else trimmed string.
func coerceValue(raw string) any {
	value := strings.TrimSpace(raw)
	value = stripQuotes(value)

	if isoDatePattern.MatchString(value) {
		return value
	}
	if f, err := strconv.ParseFloat(value, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	// Only the lowercase literal forms coerce; "Approved" in a status
	// field stays a string while a bare "approved" flag reads as true.
	switch value {
	case "true", "yes", "y", "on", "approved":
		return true
	case "false", "no", "n", "off", "denied":
		return false
	}
	return value
}

func stripQuotes(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
