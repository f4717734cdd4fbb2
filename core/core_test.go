package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessageConstructors(t *testing.T) {
	user := UserMessage("hello")
	assert.Equal(t, RoleUser, user.Role)
	assert.Equal(t, "hello", user.Content)

	call := ToolCall{ID: "c1", Name: "calculator", Arguments: map[string]any{"expression": "2+2"}}
	assistant := AssistantMessage("working on it", call)
	assert.Equal(t, RoleAssistant, assistant.Role)
	assert.Len(t, assistant.ToolCalls, 1)

	toolMsg := ToolMessage("c1", "calculator", `{"status":"success"}`)
	assert.Equal(t, RoleTool, toolMsg.Role)
	assert.Equal(t, "c1", toolMsg.ToolCallID)
	assert.Equal(t, "calculator", toolMsg.Name)
}

func TestToolResultStatus(t *testing.T) {
	ok := SuccessResult(map[string]any{"value": 4})
	assert.Equal(t, StatusSuccess, ok.Status())
	assert.False(t, ok.IsError())
	assert.Equal(t, 4, ok["value"])

	bad := ErrorResult("boom")
	assert.True(t, bad.IsError())
	assert.Equal(t, "boom", bad["error"])
}

func TestToolCallEventNilArgs(t *testing.T) {
	event := ToolCallEvent("c1", "calculator", nil)
	assert.NotNil(t, event.ToolArgs)
	assert.Empty(t, event.ToolArgs)
}

func TestOrchestratorEventIsTerminal(t *testing.T) {
	assert.True(t, OrchestratorEndEvent("done").IsTerminal())
	assert.True(t, OrchestratorErrorEvent("boom").IsTerminal())
	assert.False(t, OrchestratorTokenEvent("x").IsTerminal())
	assert.False(t, OrchestratorStartEvent().IsTerminal())
}

func TestNewIDUnique(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
