// Package anthropic implements provider.Provider for the Anthropic Claude
// Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/shared/constant"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

// Options configure the Anthropic provider adapter (temperature, model id,
// max tokens, API key). Extend via functional options to preserve stability.
type Options struct {
	Model       anthropicsdk.Model
	Temperature float64
	MaxTokens   int64
	APIKey      string
}

// Provider wraps the Anthropic Messages API behind provider.Provider.
type Provider struct {
	client *anthropicsdk.Client
	opts   Options
}

// New creates a new Anthropic provider using the official client.
func New(optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	var clientOpts []option.RequestOption
	if opts.APIKey != "" {
		clientOpts = append(clientOpts, option.WithAPIKey(opts.APIKey))
	}

	client := anthropicsdk.NewClient(clientOpts...)

	return &Provider{client: &client, opts: opts}
}

// NewFromClient creates a new Anthropic provider from an existing client.
func NewFromClient(client *anthropicsdk.Client, optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       anthropicsdk.ModelClaude3_5Sonnet20241022,
		Temperature: 0.7,
		MaxTokens:   4096,
	}
}

// Chat implements non-streaming chat.
func (p *Provider) Chat(ctx context.Context, req provider.Request) (*provider.Reply, error) {
	resp, err := p.client.Messages.New(ctx, p.buildParams(req))
	if err != nil {
		return nil, fmt.Errorf("anthropic api error: %w", err)
	}

	reply := &provider.Reply{}
	var textBuilder strings.Builder
	for _, block := range resp.Content {
		switch block.Type {
		case "text":
			textBuilder.WriteString(block.AsText().Text)
		case "tool_use":
			toolBlock := block.AsToolUse()
			reply.ToolCalls = append(reply.ToolCalls, core.ToolCall{
				ID:        toolBlock.ID,
				Name:      toolBlock.Name,
				Arguments: provider.ParseArguments(string(toolBlock.Input)),
			})
		}
	}
	reply.Text = textBuilder.String()
	return reply, nil
}

// ChatStream implements streaming chat. Text deltas surface as tokens as
// they arrive; tool_use blocks are accumulated by the SDK and emitted as
// complete tool_call events once the stream finishes.
func (p *Provider) ChatStream(ctx context.Context, req provider.Request) <-chan core.StreamEvent {
	out := make(chan core.StreamEvent, 32)

	go func() {
		defer close(out)

		out <- core.StartEvent()

		stream := p.client.Messages.NewStreaming(ctx, p.buildParams(req))

		var textBuilder strings.Builder
		message := anthropicsdk.Message{}

		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				out <- core.ErrorEvent(fmt.Sprintf("anthropic accumulate error: %v", err))
				return
			}
			switch ev := event.AsAny().(type) {
			case anthropicsdk.ContentBlockDeltaEvent:
				if delta, ok := ev.Delta.AsAny().(anthropicsdk.TextDelta); ok && delta.Text != "" {
					textBuilder.WriteString(delta.Text)
					out <- core.TokenEvent(delta.Text)
				}
			}
		}
		if err := stream.Err(); err != nil {
			out <- core.ErrorEvent(fmt.Sprintf("anthropic streaming error: %v", err))
			return
		}

		for _, block := range message.Content {
			if block.Type != "tool_use" {
				continue
			}
			toolBlock := block.AsToolUse()
			out <- core.ToolCallEvent(toolBlock.ID, toolBlock.Name, provider.ParseArguments(string(toolBlock.Input)))
		}

		out <- core.EndEvent(textBuilder.String())
	}()

	return out
}

// buildParams assembles the Messages API request.
func (p *Provider) buildParams(req provider.Request) anthropicsdk.MessageNewParams {
	params := anthropicsdk.MessageNewParams{
		Model:       p.opts.Model,
		Messages:    p.buildMessages(req.Messages),
		MaxTokens:   p.opts.MaxTokens,
		Temperature: anthropicsdk.Float(p.opts.Temperature),
	}
	if req.SystemPrompt != "" {
		params.System = []anthropicsdk.TextBlockParam{{Text: req.SystemPrompt}}
	}
	if len(req.Tools) > 0 {
		params.Tools = p.buildTools(req.Tools)
	}
	return params
}

// buildMessages converts normalized messages to the Anthropic alternating
// user/assistant format. Tool results become tool_result blocks inside a
// user message; consecutive tool results are grouped into one.
func (p *Provider) buildMessages(messages []core.ChatMessage) []anthropicsdk.MessageParam {
	var out []anthropicsdk.MessageParam
	var pendingResults []anthropicsdk.ContentBlockParamUnion

	flushResults := func() {
		if len(pendingResults) > 0 {
			out = append(out, anthropicsdk.NewUserMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			// Handled via the top-level system field.
		case core.RoleTool:
			pendingResults = append(pendingResults, anthropicsdk.NewToolResultBlock(m.ToolCallID, m.Content, false))
		case core.RoleAssistant:
			flushResults()
			content := p.buildAssistantContent(m)
			if len(content) > 0 {
				out = append(out, anthropicsdk.NewAssistantMessage(content...))
			}
		default:
			flushResults()
			if m.Content != "" {
				out = append(out, anthropicsdk.NewUserMessage(anthropicsdk.NewTextBlock(m.Content)))
			}
		}
	}
	flushResults()
	return out
}

func (p *Provider) buildAssistantContent(m core.ChatMessage) []anthropicsdk.ContentBlockParamUnion {
	var content []anthropicsdk.ContentBlockParamUnion
	if m.Content != "" {
		content = append(content, anthropicsdk.NewTextBlock(m.Content))
	}
	for _, tc := range m.ToolCalls {
		input := tc.Arguments
		if input == nil {
			input = map[string]any{}
		}
		content = append(content, anthropicsdk.NewToolUseBlock(tc.ID, input, tc.Name))
	}
	return content
}

// buildTools converts schemas to the Anthropic tool format.
func (p *Provider) buildTools(tools []core.ToolSchema) []anthropicsdk.ToolUnionParam {
	anthropicTools := make([]anthropicsdk.ToolUnionParam, len(tools))

	for i, tool := range tools {
		inputSchema := anthropicsdk.ToolInputSchemaParam{
			Type: constant.Object("object"),
		}
		if tool.Parameters != nil {
			if properties, ok := tool.Parameters["properties"]; ok {
				inputSchema.Properties = properties
			}
			if required, ok := tool.Parameters["required"]; ok {
				inputSchema.Required = requiredStrings(required)
			}
		}
		anthropicTools[i] = anthropicsdk.ToolUnionParamOfTool(inputSchema, tool.Name)
	}
	return anthropicTools
}

func requiredStrings(required any) []string {
	switch v := required.(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, r := range v {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Info returns metadata describing this Anthropic provider implementation.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Name:          string(p.opts.Model),
		Provider:      "anthropic",
		SupportsTools: true,
	}
}
