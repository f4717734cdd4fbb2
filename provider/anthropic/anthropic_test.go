package anthropic

import (
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

func TestBuildParams_OmitsToolsWhenEmpty(t *testing.T) {
	p := New()

	params := p.buildParams(provider.Request{
		Messages: []core.ChatMessage{core.UserMessage("hello")},
	})
	assert.Nil(t, params.Tools)
	assert.Empty(t, params.System)
}

func TestBuildParams_SystemAndTools(t *testing.T) {
	p := New()

	params := p.buildParams(provider.Request{
		SystemPrompt: "You are Jarvis.",
		Messages:     []core.ChatMessage{core.UserMessage("hello")},
		Tools: []core.ToolSchema{{
			Name:        "calculator",
			Description: "Evaluate expressions",
			Parameters: map[string]any{
				"type":       "object",
				"properties": map[string]any{"expression": map[string]any{"type": "string"}},
				"required":   []string{"expression"},
			},
		}},
	})

	require.Len(t, params.System, 1)
	assert.Equal(t, "You are Jarvis.", params.System[0].Text)

	require.Len(t, params.Tools, 1)
	tool := params.Tools[0].OfTool
	require.NotNil(t, tool)
	assert.Equal(t, "calculator", tool.Name)
	assert.Equal(t, []string{"expression"}, tool.InputSchema.Required)
}

func TestBuildMessages_GroupsConsecutiveToolResults(t *testing.T) {
	p := New()

	messages := p.buildMessages([]core.ChatMessage{
		core.UserMessage("List containers"),
		core.AssistantMessage("Checking, Sir.", core.ToolCall{
			ID:        "c1",
			Name:      "system_status",
			Arguments: map[string]any{"infoType": "cpu"},
		}, core.ToolCall{
			ID:        "c2",
			Name:      "docker_control",
			Arguments: map[string]any{"action": "ps"},
		}),
		core.ToolMessage("c1", "system_status", `{"status":"success"}`),
		core.ToolMessage("c2", "docker_control", `{"status":"success"}`),
	})

	require.Len(t, messages, 3)
	assert.Equal(t, anthropicsdk.MessageParamRoleUser, messages[0].Role)
	assert.Equal(t, anthropicsdk.MessageParamRoleAssistant, messages[1].Role)

	// text block + two tool_use blocks
	assert.Len(t, messages[1].Content, 3)

	// both tool results grouped into one user message
	assert.Equal(t, anthropicsdk.MessageParamRoleUser, messages[2].Role)
	assert.Len(t, messages[2].Content, 2)
}

func TestBuildMessages_SkipsSystemRole(t *testing.T) {
	p := New()

	messages := p.buildMessages([]core.ChatMessage{
		{Role: core.RoleSystem, Content: "ignored here"},
		core.UserMessage("hello"),
	})
	require.Len(t, messages, 1)
	assert.Equal(t, anthropicsdk.MessageParamRoleUser, messages[0].Role)
}

func TestRequiredStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, requiredStrings([]string{"a", "b"}))
	assert.Equal(t, []string{"a"}, requiredStrings([]any{"a", 1}))
	assert.Nil(t, requiredStrings("nope"))
}

func TestInfo(t *testing.T) {
	info := New().Info()
	assert.Equal(t, "anthropic", info.Provider)
	assert.True(t, info.SupportsTools)
}
