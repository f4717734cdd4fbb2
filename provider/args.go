package provider

import "encoding/json"

// ParseArguments decodes a consolidated tool-call argument string. Malformed
// or empty JSON degrades to an empty map so a bad model emission never kills
// the stream.
func ParseArguments(raw string) map[string]any {
	if raw == "" {
		return map[string]any{}
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil || args == nil {
		return map[string]any{}
	}
	return args
}
