package interpreter

// MissingFields returns the subset of required fields that are absent or nil
// in the payload. An empty result means the payload is valid for creation.
func MissingFields(payload map[string]any, required []string) []string {
	var missing []string
	for _, field := range required {
		if v, ok := payload[field]; !ok || v == nil {
			missing = append(missing, field)
		}
	}
	return missing
}
