package core

import "github.com/google/uuid"

// Role identifies the author of a ChatMessage.
type Role string

const (
	// RoleSystem marks instruction messages injected by the application.
	RoleSystem Role = "system"
	// RoleUser marks messages authored by the end user.
	RoleUser Role = "user"
	// RoleAssistant marks model-authored messages, including tool requests.
	RoleAssistant Role = "assistant"
	// RoleTool marks tool execution results fed back to the model.
	RoleTool Role = "tool"
)

// ChatMessage is one entry in a conversation buffer.
//
// ToolCalls is populated only on assistant messages in which the model
// requested tool execution. ToolCallID and Name are populated only on tool
// messages and must reference a call issued by the immediately preceding
// assistant message.
type ChatMessage struct {
	Role       Role       `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a single tool invocation requested by the model. ID is opaque
// and unique within one assistant turn; Name must match a registered tool.
type ToolCall struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// UserMessage constructs a user-role ChatMessage.
func UserMessage(text string) ChatMessage {
	return ChatMessage{Role: RoleUser, Content: text}
}

// AssistantMessage constructs an assistant-role ChatMessage carrying optional
// tool calls alongside any text produced in the same turn.
func AssistantMessage(text string, calls ...ToolCall) ChatMessage {
	return ChatMessage{Role: RoleAssistant, Content: text, ToolCalls: calls}
}

// ToolMessage constructs a tool-role ChatMessage answering the call with the
// given id. Content is expected to be the JSON-serialized tool result.
func ToolMessage(callID, toolName, content string) ChatMessage {
	return ChatMessage{Role: RoleTool, Content: content, ToolCallID: callID, Name: toolName}
}

// NewID generates a unique identifier for events and tool calls.
func NewID() string { return uuid.NewString() }
