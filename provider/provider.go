// Package provider defines the vendor-agnostic chat abstraction used by the
// orchestrator.
//
// Core goals:
//   - Unify streaming + non-streaming chat behind a single interface
//   - Normalize tool / function call representation across vendors
//   - Keep request/response shapes minimal and transport independent
//   - Facilitate lightweight mocking for tests (mock subpackage)
//
// Vendors (OpenAI, Anthropic, Gemini, webhook) implement the Provider
// interface from subpackages so the orchestrator stays decoupled from SDKs.
package provider

import (
	"context"

	"github.com/butler-ai/butler/core"
)

// Request captures the normalized chat input produced by the orchestrator.
type Request struct {
	// Messages is the conversation so far, oldest first. Tool results appear
	// as RoleTool messages carrying the originating call id.
	Messages []core.ChatMessage
	// Tools is the reduced tool surface for this turn. Empty means the model
	// is offered no tools.
	Tools []core.ToolSchema
	// SystemPrompt is sent per-vendor convention (system message, top-level
	// system field, or system instruction).
	SystemPrompt string
}

// Reply is a complete non-streaming chat result.
type Reply struct {
	Text      string
	ToolCalls []core.ToolCall
}

// Info contains metadata about a provider implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"`
	SupportsTools bool   `json:"supports_tools"`
}

// Provider is the minimal interface the orchestrator needs to drive a model.
//
// ChatStream returns a channel that yields exactly one start event, any
// number of token and tool_call events, and exactly one terminal end or
// error event, then closes. Tool call arguments are fully consolidated
// before a tool_call event is emitted; arguments that fail to parse as JSON
// surface as an empty map rather than an error.
type Provider interface {
	Chat(ctx context.Context, req Request) (*Reply, error)
	ChatStream(ctx context.Context, req Request) <-chan core.StreamEvent

	// Info returns information about the provider implementation.
	Info() Info
}
