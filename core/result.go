package core

// ToolResult is the envelope every tool execution yields. The registry
// guarantees a "status" key of "success" or "error"; the remaining payload is
// handler-defined and opaque to the framework.
type ToolResult map[string]any

const (
	// StatusSuccess marks a completed tool execution.
	StatusSuccess = "success"
	// StatusError marks a failed tool execution.
	StatusError = "error"
)

// SuccessResult builds a success envelope around handler payload fields.
func SuccessResult(payload map[string]any) ToolResult {
	r := ToolResult{"status": StatusSuccess}
	for k, v := range payload {
		r[k] = v
	}
	return r
}

// ErrorResult builds an error envelope with a readable message.
func ErrorResult(message string) ToolResult {
	return ToolResult{"status": StatusError, "error": message}
}

// Status returns the envelope status, or "error" if the key is missing.
func (r ToolResult) Status() string {
	if s, ok := r["status"].(string); ok {
		return s
	}
	return StatusError
}

// IsError reports whether the execution failed.
func (r ToolResult) IsError() bool { return r.Status() == StatusError }
