package core

// StreamEventType discriminates the variants of StreamEvent.
type StreamEventType string

const (
	// StreamStart opens a provider turn. Exactly one per stream.
	StreamStart StreamEventType = "start"
	// StreamToken carries an incremental fragment of the answer text.
	StreamToken StreamEventType = "token"
	// StreamToolCall carries one fully materialized tool invocation request.
	StreamToolCall StreamEventType = "tool_call"
	// StreamEnd closes a successful turn with the consolidated full text.
	StreamEnd StreamEventType = "end"
	// StreamError closes a failed turn; no further events follow.
	StreamError StreamEventType = "error"
)

// StreamEvent is the contract between a provider adapter and the
// orchestrator. A well-formed stream is: start, any number of token and
// tool_call events in arrival order, then exactly one end or error.
type StreamEvent struct {
	Type StreamEventType `json:"type"`

	// Content is the token text for token events or the message for error
	// events.
	Content string `json:"content,omitempty"`

	// Tool call fields, set only for tool_call events. Arguments are parsed
	// from the provider's accumulated JSON; a parse failure degrades to an
	// empty map rather than an error.
	ToolCallID string         `json:"tool_call_id,omitempty"`
	ToolName   string         `json:"tool_name,omitempty"`
	ToolArgs   map[string]any `json:"tool_args,omitempty"`

	// FullResponse is the provider-consolidated answer text, set on end
	// events. When present it is authoritative over token accumulation.
	FullResponse string `json:"full_response,omitempty"`
}

// StartEvent constructs the stream-opening event.
func StartEvent() StreamEvent { return StreamEvent{Type: StreamStart} }

// TokenEvent constructs an incremental text event.
func TokenEvent(text string) StreamEvent {
	return StreamEvent{Type: StreamToken, Content: text}
}

// ToolCallEvent constructs a consolidated tool invocation event.
func ToolCallEvent(id, name string, args map[string]any) StreamEvent {
	if args == nil {
		args = map[string]any{}
	}
	return StreamEvent{Type: StreamToolCall, ToolCallID: id, ToolName: name, ToolArgs: args}
}

// EndEvent constructs the successful terminal event.
func EndEvent(fullText string) StreamEvent {
	return StreamEvent{Type: StreamEnd, FullResponse: fullText}
}

// ErrorEvent constructs the failure terminal event.
func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: StreamError, Content: message}
}

// OrchestratorEventType discriminates the variants of OrchestratorEvent.
type OrchestratorEventType string

const (
	// EventStart opens a processing turn.
	EventStart OrchestratorEventType = "start"
	// EventToken relays an incremental answer fragment.
	EventToken OrchestratorEventType = "token"
	// EventToolCall announces a tool invocation requested by the model.
	EventToolCall OrchestratorEventType = "tool_call"
	// EventToolResult reports the outcome of an executed tool.
	EventToolResult OrchestratorEventType = "tool_result"
	// EventEnd closes a successful turn with the full answer.
	EventEnd OrchestratorEventType = "end"
	// EventError closes a failed turn.
	EventError OrchestratorEventType = "error"
)

// OrchestratorEvent is the only contract the transport layer consumes. It
// mirrors StreamEvent and adds tool_result events inserted after each tool
// executes.
type OrchestratorEvent struct {
	Type         OrchestratorEventType `json:"type"`
	Content      string                `json:"content,omitempty"`
	ToolName     string                `json:"tool_name,omitempty"`
	ToolArgs     map[string]any        `json:"tool_args,omitempty"`
	ToolResult   ToolResult            `json:"tool_result,omitempty"`
	FullResponse string                `json:"full_response,omitempty"`
}

// IsTerminal reports whether this event closes the turn.
func (e OrchestratorEvent) IsTerminal() bool {
	return e.Type == EventEnd || e.Type == EventError
}

// OrchestratorStartEvent constructs the turn-opening event.
func OrchestratorStartEvent() OrchestratorEvent {
	return OrchestratorEvent{Type: EventStart}
}

// OrchestratorTokenEvent constructs an incremental text event.
func OrchestratorTokenEvent(text string) OrchestratorEvent {
	return OrchestratorEvent{Type: EventToken, Content: text}
}

// OrchestratorToolCallEvent announces a requested tool invocation.
func OrchestratorToolCallEvent(name string, args map[string]any) OrchestratorEvent {
	return OrchestratorEvent{Type: EventToolCall, ToolName: name, ToolArgs: args}
}

// OrchestratorToolResultEvent reports an executed tool's outcome.
func OrchestratorToolResultEvent(name string, result ToolResult) OrchestratorEvent {
	return OrchestratorEvent{Type: EventToolResult, ToolName: name, ToolResult: result}
}

// OrchestratorEndEvent constructs the successful terminal event.
func OrchestratorEndEvent(fullResponse string) OrchestratorEvent {
	return OrchestratorEvent{Type: EventEnd, FullResponse: fullResponse}
}

// OrchestratorErrorEvent constructs the failure terminal event.
func OrchestratorErrorEvent(message string) OrchestratorEvent {
	return OrchestratorEvent{Type: EventError, Content: message}
}
