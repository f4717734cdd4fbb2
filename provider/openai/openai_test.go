package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

func testProvider(optFns ...func(o *Options)) *Provider {
	return New(optFns...)
}

func TestBuildParams_OmitsToolsWhenEmpty(t *testing.T) {
	p := testProvider()

	params := p.buildParams(provider.Request{
		Messages: []core.ChatMessage{core.UserMessage("hello")},
	})
	assert.Nil(t, params.Tools)
}

func TestBuildParams_IncludesTools(t *testing.T) {
	p := testProvider(func(o *Options) { o.Model = "gpt-4o" })

	params := p.buildParams(provider.Request{
		Messages: []core.ChatMessage{core.UserMessage("hello")},
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

	require.Len(t, params.Tools, 1)
	assert.Equal(t, "calculator", params.Tools[0].Function.Name)
	assert.Equal(t, "gpt-4o", string(params.Model))
}

func TestBuildMessages_RoleMapping(t *testing.T) {
	p := testProvider()

	messages := p.buildMessages(provider.Request{
		SystemPrompt: "You are Jarvis.",
		Messages: []core.ChatMessage{
			core.UserMessage("status report"),
			core.AssistantMessage("Checking now, Sir."),
			core.ToolMessage("c1", "system_status", `{"status":"success"}`),
		},
	})

	require.Len(t, messages, 4)
	assert.NotNil(t, messages[0].OfSystem)
	assert.NotNil(t, messages[1].OfUser)
	assert.NotNil(t, messages[2].OfAssistant)
	require.NotNil(t, messages[3].OfTool)
	assert.Equal(t, "c1", messages[3].OfTool.ToolCallID)
}

func TestBuildMessages_ToolCallReplay(t *testing.T) {
	p := testProvider()

	messages := p.buildMessages(provider.Request{
		Messages: []core.ChatMessage{
			core.UserMessage("List containers"),
			core.AssistantMessage("", core.ToolCall{
				ID:        "c1",
				Name:      "docker_control",
				Arguments: map[string]any{"action": "ps"},
			}),
			core.ToolMessage("c1", "docker_control", `{"status":"success"}`),
		},
	})

	require.Len(t, messages, 3)
	assistant := messages[1].OfAssistant
	require.NotNil(t, assistant)
	require.Len(t, assistant.ToolCalls, 1)
	assert.Equal(t, "c1", assistant.ToolCalls[0].ID)
	assert.Equal(t, "docker_control", assistant.ToolCalls[0].Function.Name)
	assert.JSONEq(t, `{"action":"ps"}`, assistant.ToolCalls[0].Function.Arguments)
}

func TestEncodeArguments(t *testing.T) {
	assert.Equal(t, "{}", encodeArguments(nil))
	assert.Equal(t, "{}", encodeArguments(map[string]any{}))
	assert.JSONEq(t, `{"expression":"2+2"}`, encodeArguments(map[string]any{"expression": "2+2"}))
}

func TestInfo(t *testing.T) {
	p := testProvider()
	info := p.Info()
	assert.Equal(t, "openai", info.Provider)
	assert.True(t, info.SupportsTools)
}
