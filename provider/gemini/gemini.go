// Package gemini implements provider.Provider for Google Gemini via the
// genai SDK.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

// Options configure the Gemini provider adapter.
type Options struct {
	Model       string
	Temperature float32
	APIKey      string
}

// Provider wraps the Gemini API behind provider.Provider.
type Provider struct {
	client *genai.Client
	opts   Options
}

// New creates a new Gemini provider. The API key falls back to the
// GEMINI_API_KEY environment variable when unset.
func New(ctx context.Context, optFns ...func(o *Options)) (*Provider, error) {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: opts.APIKey})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Provider{client: client, opts: opts}, nil
}

// NewFromClient creates a new Gemini provider from an existing client.
func NewFromClient(client *genai.Client, optFns ...func(o *Options)) *Provider {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Provider{client: client, opts: opts}
}

func defaultOptions() Options {
	return Options{
		Model:       "gemini-2.0-flash",
		Temperature: 0.7,
	}
}

// Chat implements non-streaming chat.
func (p *Provider) Chat(ctx context.Context, req provider.Request) (*provider.Reply, error) {
	contents := toContents(req.Messages)
	config := p.buildConfig(req)

	resp, err := p.client.Models.GenerateContent(ctx, p.opts.Model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no candidates returned")
	}

	reply := &provider.Reply{}
	var textBuilder strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			textBuilder.WriteString(part.Text)
		}
		if part.FunctionCall != nil {
			reply.ToolCalls = append(reply.ToolCalls, toolCallFromPart(part.FunctionCall))
		}
	}
	reply.Text = textBuilder.String()
	return reply, nil
}

// ChatStream implements streaming chat. Gemini delivers function calls as
// whole parts inside stream chunks, so no delta aggregation is needed.
func (p *Provider) ChatStream(ctx context.Context, req provider.Request) <-chan core.StreamEvent {
	out := make(chan core.StreamEvent, 32)

	go func() {
		defer close(out)

		out <- core.StartEvent()

		contents := toContents(req.Messages)
		config := p.buildConfig(req)

		var textBuilder strings.Builder

		for resp, err := range p.client.Models.GenerateContentStream(ctx, p.opts.Model, contents, config) {
			if err != nil {
				out <- core.ErrorEvent(fmt.Sprintf("gemini streaming error: %v", err))
				return
			}
			if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
				continue
			}
			for _, part := range resp.Candidates[0].Content.Parts {
				if part.Text != "" {
					textBuilder.WriteString(part.Text)
					out <- core.TokenEvent(part.Text)
				}
				if part.FunctionCall != nil {
					call := toolCallFromPart(part.FunctionCall)
					out <- core.ToolCallEvent(call.ID, call.Name, call.Arguments)
				}
			}
		}

		out <- core.EndEvent(textBuilder.String())
	}()

	return out
}

func (p *Provider) buildConfig(req provider.Request) *genai.GenerateContentConfig {
	temperature := p.opts.Temperature
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemPrompt)},
		}
	}
	if len(req.Tools) > 0 {
		config.Tools = toGeminiTools(req.Tools)
	}
	return config
}

func toolCallFromPart(fc *genai.FunctionCall) core.ToolCall {
	id := fc.ID
	if id == "" {
		id = core.NewID()
	}
	args := fc.Args
	if args == nil {
		args = map[string]any{}
	}
	return core.ToolCall{ID: id, Name: fc.Name, Arguments: args}
}

// toContents converts normalized messages to Gemini Content format. Gemini
// knows only user and model roles; tool results travel as FunctionResponse
// parts in a user-role content.
func toContents(messages []core.ChatMessage) []*genai.Content {
	contents := make([]*genai.Content, 0, len(messages))

	for _, m := range messages {
		switch m.Role {
		case core.RoleSystem:
			// Carried via SystemInstruction.
		case core.RoleTool:
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []*genai.Part{{
					FunctionResponse: &genai.FunctionResponse{
						Name:     m.Name,
						Response: map[string]any{"content": m.Content},
					},
				}},
			})
		case core.RoleAssistant:
			parts := make([]*genai.Part, 0, len(m.ToolCalls)+1)
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				parts = append(parts, &genai.Part{
					FunctionCall: &genai.FunctionCall{Name: tc.Name, Args: tc.Arguments},
				})
			}
			if len(parts) > 0 {
				contents = append(contents, &genai.Content{Role: "model", Parts: parts})
			}
		default:
			if m.Content != "" {
				contents = append(contents, &genai.Content{
					Role:  "user",
					Parts: []*genai.Part{genai.NewPartFromText(m.Content)},
				})
			}
		}
	}
	return contents
}

// toGeminiTools converts schemas to Gemini function declarations.
func toGeminiTools(tools []core.ToolSchema) []*genai.Tool {
	declarations := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, tool := range tools {
		declarations = append(declarations, &genai.FunctionDeclaration{
			Name:        tool.Name,
			Description: tool.Description,
			Parameters:  toGeminiSchema(tool.Parameters),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: declarations}}
}

// toGeminiSchema converts a JSON-schema map to the SDK's typed Schema.
func toGeminiSchema(params map[string]any) *genai.Schema {
	if params == nil {
		return nil
	}

	schema := &genai.Schema{Type: toGeminiType(stringValue(params["type"]))}
	if desc := stringValue(params["description"]); desc != "" {
		schema.Description = desc
	}

	if properties, ok := params["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(properties))
		for name, prop := range properties {
			if propMap, ok := prop.(map[string]any); ok {
				schema.Properties[name] = toGeminiSchema(propMap)
			}
		}
	}
	if items, ok := params["items"].(map[string]any); ok {
		schema.Items = toGeminiSchema(items)
	}
	if enum := stringSlice(params["enum"]); len(enum) > 0 {
		schema.Enum = enum
	}
	if required := stringSlice(params["required"]); len(required) > 0 {
		schema.Required = required
	}
	return schema
}

func toGeminiType(typeStr string) genai.Type {
	switch typeStr {
	case "string":
		return genai.TypeString
	case "number":
		return genai.TypeNumber
	case "integer":
		return genai.TypeInteger
	case "boolean":
		return genai.TypeBoolean
	case "array":
		return genai.TypeArray
	case "object", "":
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v any) []string {
	switch values := v.(type) {
	case []string:
		return values
	case []any:
		var out []string
		for _, item := range values {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

// Info returns metadata describing this Gemini provider implementation.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Name:          p.opts.Model,
		Provider:      "gemini",
		SupportsTools: true,
	}
}
