// Package openai implements provider.Provider using the OpenAI Chat
// Completions API (including streaming + function/tool calling). It adapts
// the normalized Request structure into the SDK's message format and back.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

// aggCall aggregates partial tool call streaming deltas (id, name, arguments)
// allowing reconstruction of complete calls when finish reason is emitted.
type aggCall struct{ id, name, args string }

// Options configure the OpenAI provider adapter.
// Fields mirror a subset of Chat Completion parameters intentionally kept
// minimal; extend via functional options without breaking callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Provider wraps the OpenAI Chat Completions API behind provider.Provider.
type Provider struct {
	client *openaisdk.Client
	opts   Options
}

// New creates a new OpenAI provider using the official client. The client
// reads OPENAI_API_KEY from the environment.
func New(optFns ...func(o *Options)) *Provider {
	client := openaisdk.NewClient()
	return NewFromClient(&client, optFns...)
}

// NewFromClient creates a new OpenAI provider from an existing client.
func NewFromClient(client *openaisdk.Client, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Model:               openaisdk.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 4096,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

// Chat implements non-streaming chat.
func (p *Provider) Chat(ctx context.Context, req provider.Request) (*provider.Reply, error) {
	params := p.buildParams(req)

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned")
	}

	ch0 := resp.Choices[0]
	reply := &provider.Reply{Text: ch0.Message.Content}
	for _, tc := range ch0.Message.ToolCalls {
		reply.ToolCalls = append(reply.ToolCalls, core.ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: provider.ParseArguments(tc.Function.Arguments),
		})
	}
	return reply, nil
}

// ChatStream implements streaming chat with tool calling.
func (p *Provider) ChatStream(ctx context.Context, req provider.Request) <-chan core.StreamEvent {
	out := make(chan core.StreamEvent, 32)

	go func() {
		defer close(out)

		out <- core.StartEvent()

		params := p.buildParams(req)
		stream := p.client.Chat.Completions.NewStreaming(ctx, params)

		var textBuilder strings.Builder
		toolAgg := map[int64]*aggCall{}
		order := []int64{}
		finished := false

		for stream.Next() {
			ck := stream.Current()
			for _, ch := range ck.Choices {
				if ch.Delta.Content != "" {
					textBuilder.WriteString(ch.Delta.Content)
					out <- core.TokenEvent(ch.Delta.Content)
				}
				for _, tc := range ch.Delta.ToolCalls {
					ac, ok := toolAgg[tc.Index]
					if !ok {
						ac = &aggCall{}
						toolAgg[tc.Index] = ac
						order = append(order, tc.Index)
					}
					if tc.ID != "" {
						ac.id = tc.ID
					}
					if tc.Function.Name != "" {
						ac.name = tc.Function.Name
					}
					if tc.Function.Arguments != "" {
						ac.args += tc.Function.Arguments
					}
				}
				if ch.FinishReason != "" && !finished {
					finished = true
					// Arguments are complete only once the finish reason
					// arrives, so tool_call events are deferred until here.
					for _, idx := range order {
						ac := toolAgg[idx]
						out <- core.ToolCallEvent(ac.id, ac.name, provider.ParseArguments(ac.args))
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			out <- core.ErrorEvent(fmt.Sprintf("openai streaming error: %v", err))
			return
		}
		out <- core.EndEvent(textBuilder.String())
	}()

	return out
}

// buildParams assembles the request parameters including tool definitions.
func (p *Provider) buildParams(req provider.Request) openaisdk.ChatCompletionNewParams {
	params := openaisdk.ChatCompletionNewParams{
		Messages:            p.buildMessages(req),
		Model:               p.opts.Model,
		Temperature:         openaisdk.Float(p.opts.Temperature),
		MaxCompletionTokens: openaisdk.Int(p.opts.MaxCompletionTokens),
	}
	if len(req.Tools) == 0 {
		return params
	}
	tools := make([]openaisdk.ChatCompletionToolParam, len(req.Tools))
	for i, schema := range req.Tools {
		tools[i] = openaisdk.ChatCompletionToolParam{
			Type: "function",
			Function: openaisdk.FunctionDefinitionParam{
				Name:        schema.Name,
				Description: openaisdk.String(schema.Description),
				Parameters:  schema.Parameters,
			},
		}
	}
	params.Tools = tools
	return params
}

// buildMessages converts normalized messages into OpenAI chat messages.
func (p *Provider) buildMessages(req provider.Request) []openaisdk.ChatCompletionMessageParamUnion {
	var messages []openaisdk.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openaisdk.SystemMessage(req.SystemPrompt))
	}
	for _, m := range req.Messages {
		switch m.Role {
		case core.RoleSystem:
			messages = append(messages, openaisdk.SystemMessage(m.Content))
		case core.RoleUser:
			messages = append(messages, openaisdk.UserMessage(m.Content))
		case core.RoleAssistant:
			if len(m.ToolCalls) == 0 {
				messages = append(messages, openaisdk.AssistantMessage(m.Content))
				continue
			}
			messages = append(messages, assistantWithToolCalls(m))
		case core.RoleTool:
			messages = append(messages, openaisdk.ToolMessage(m.Content, m.ToolCallID))
		default:
			if m.Content != "" {
				messages = append(messages, openaisdk.UserMessage(m.Content))
			}
		}
	}
	return messages
}

func assistantWithToolCalls(m core.ChatMessage) openaisdk.ChatCompletionMessageParamUnion {
	toolCalls := make([]openaisdk.ChatCompletionMessageToolCallParam, len(m.ToolCalls))
	for i, tc := range m.ToolCalls {
		toolCalls[i] = openaisdk.ChatCompletionMessageToolCallParam{
			ID:   tc.ID,
			Type: "function",
			Function: openaisdk.ChatCompletionMessageToolCallFunctionParam{
				Name:      tc.Name,
				Arguments: encodeArguments(tc.Arguments),
			},
		}
	}
	msg := &openaisdk.ChatCompletionAssistantMessageParam{
		Role:      "assistant",
		ToolCalls: toolCalls,
	}
	if m.Content != "" {
		msg.Content.OfString = openaisdk.String(m.Content)
	}
	return openaisdk.ChatCompletionMessageParamUnion{OfAssistant: msg}
}

func encodeArguments(args map[string]any) string {
	if len(args) == 0 {
		return "{}"
	}
	encoded, err := json.Marshal(args)
	if err != nil {
		return "{}"
	}
	return string(encoded)
}

// Info returns metadata describing this OpenAI provider implementation.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Name:          p.opts.Model,
		Provider:      "openai",
		SupportsTools: true,
	}
}
