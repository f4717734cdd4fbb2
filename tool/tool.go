// Package tool implements the function calling subsystem: schema-described
// capabilities the model can invoke, a registry that dispatches them by name
// with uniform error handling, and the builtin plus remote-delegated tool
// families.
package tool

import (
	"context"
	"fmt"
)

// Tool is a callable capability exposed to the model.
//
// Implementations should provide clear names and descriptions, define a
// proper JSON schema for parameters, handle errors gracefully and be safe for
// concurrent use.
type Tool interface {
	// Name returns the unique identifier for this tool (snake_case).
	Name() string

	// Description returns a human-readable description given to the model.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool. The returned map is the handler's own result
	// payload; errors are normalized by the registry into an error envelope.
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Error codes attached to ToolError for uniform downstream handling.
const (
	// CodeValidation marks schema / argument mismatches.
	CodeValidation = "VALIDATION_ERROR"
	// CodeExecution marks failures inside the handler.
	CodeExecution = "EXECUTION_ERROR"
	// CodeTimeout marks remote executions that exceeded their deadline.
	CodeTimeout = "TIMEOUT_ERROR"
	// CodeUnknownTool marks dispatch to an unregistered name.
	CodeUnknownTool = "UNKNOWN_TOOL"
)

// ToolError represents errors that occur during tool execution.
type ToolError struct {
	Tool    string `json:"tool"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details any    `json:"details,omitempty"`
}

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the specified details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
