// Package orchestrator drives the agentic conversation loop: classify the
// query, call the provider with a reduced tool surface, execute requested
// tools, and feed results back until the model produces a final answer.
package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/butler-ai/butler/classify"
	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/logging"
	"github.com/butler-ai/butler/memory"
	"github.com/butler-ai/butler/prompt"
	"github.com/butler-ai/butler/provider"
	"github.com/butler-ai/butler/tool"
)

// Searcher finds prior-conversation summaries relevant to a query. Failures
// degrade to no augmentation, never to a turn error.
type Searcher interface {
	SearchRelevant(ctx context.Context, query string, limit int, minScore float64) ([]core.SummaryHit, error)
}

// coreTools is the minimal tool set still offered when classification maps a
// query to no tools at all. A couple of harmless tools outperform none.
var coreTools = []string{"calculator", "get_current_time"}

// Options configure the Orchestrator.
type Options struct {
	// MaxIterations caps model round-trips per turn.
	MaxIterations int
	// SystemPrompt is the persona for tool-enabled turns.
	SystemPrompt string
	// ShortSystemPrompt is used for simple queries that need no tools.
	ShortSystemPrompt string
	// Searcher augments the system prompt with prior-session context. Nil
	// disables augmentation.
	Searcher Searcher
	// MaxSummaries bounds how many summaries augment the prompt.
	MaxSummaries int
	// MinScore is the relevance cutoff for summaries.
	MinScore float64
	// EventBufferSize sizes the outbound event channel.
	EventBufferSize int
	Logger          logging.Logger
}

// Orchestrator manages conversation flow, tool execution, and streaming for
// one provider + registry pair. Safe for concurrent Process calls; all
// per-turn state lives on the stack.
type Orchestrator struct {
	provider provider.Provider
	registry *tool.Registry
	opts     Options
}

// New constructs an Orchestrator.
func New(p provider.Provider, registry *tool.Registry, optFns ...func(o *Options)) *Orchestrator {
	opts := Options{
		MaxIterations:     10,
		SystemPrompt:      prompt.System,
		ShortSystemPrompt: prompt.SystemShort,
		MaxSummaries:      3,
		MinScore:          memory.DefaultMinScore,
		EventBufferSize:   32,
		Logger:            logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Orchestrator{provider: p, registry: registry, opts: opts}
}

// Process runs one conversation turn. The returned channel yields exactly
// one start event, then token / tool_call / tool_result events, and closes
// after a single terminal end or error event. History carries only prior
// user and assistant turns; tool bookkeeping is internal to the turn.
func (o *Orchestrator) Process(ctx context.Context, userText string, history []core.ChatMessage) <-chan core.OrchestratorEvent {
	out := make(chan core.OrchestratorEvent, o.opts.EventBufferSize)

	go func() {
		defer close(out)
		o.run(ctx, userText, history, out)
	}()

	return out
}

// ProcessSync runs one turn and blocks until the final response. Useful for
// integrations that do not need streaming.
func (o *Orchestrator) ProcessSync(ctx context.Context, userText string, history []core.ChatMessage) (string, error) {
	var full string
	ended := false
	for event := range o.Process(ctx, userText, history) {
		switch event.Type {
		case core.EventEnd:
			full = event.FullResponse
			ended = true
		case core.EventError:
			return "", fmt.Errorf("%s", event.Content)
		}
	}
	if !ended {
		// A turn abandoned by cancellation closes the channel without a
		// terminal event.
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("turn ended without a response")
	}
	return full, nil
}

func (o *Orchestrator) run(ctx context.Context, userText string, history []core.ChatMessage, out chan<- core.OrchestratorEvent) {
	messages := make([]core.ChatMessage, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, core.UserMessage(userText))

	category := classify.Classify(userText)
	schemas := o.resolveTools(category)
	systemPrompt := o.resolvePrompt(ctx, category, userText)

	o.opts.Logger.Debug("turn.start",
		"category", string(category),
		"tools", len(schemas),
		"provider", o.provider.Info().Provider,
	)

	if !emit(ctx, out, core.OrchestratorStartEvent()) {
		return
	}

	var fullResponse string

	for iteration := 1; iteration <= o.opts.MaxIterations; iteration++ {
		var pendingCalls []core.ToolCall
		var currentText strings.Builder
		finalText := ""

		stream := o.provider.ChatStream(ctx, provider.Request{
			Messages:     messages,
			Tools:        schemas,
			SystemPrompt: systemPrompt,
		})

		for event := range stream {
			switch event.Type {
			case core.StreamToken:
				currentText.WriteString(event.Content)
				if !emit(ctx, out, core.OrchestratorTokenEvent(event.Content)) {
					return
				}
			case core.StreamToolCall:
				call := core.ToolCall{
					ID:        event.ToolCallID,
					Name:      event.ToolName,
					Arguments: event.ToolArgs,
				}
				if call.ID == "" {
					call.ID = core.NewID()
				}
				if call.Arguments == nil {
					call.Arguments = map[string]any{}
				}
				pendingCalls = append(pendingCalls, call)
				if !emit(ctx, out, core.OrchestratorToolCallEvent(call.Name, call.Arguments)) {
					return
				}
			case core.StreamError:
				o.opts.Logger.Error("turn.provider", "iteration", iteration, "error", event.Content)
				emit(ctx, out, core.OrchestratorErrorEvent(event.Content))
				return
			case core.StreamEnd:
				// The consolidated text is authoritative over the token
				// accumulation when both are present.
				if event.FullResponse != "" {
					finalText = event.FullResponse
				}
			}
		}

		text := currentText.String()
		if finalText != "" {
			text = finalText
		}

		if len(pendingCalls) == 0 {
			fullResponse = text
			emit(ctx, out, core.OrchestratorEndEvent(fullResponse))
			return
		}

		messages = append(messages, core.AssistantMessage(text, pendingCalls...))
		for _, call := range pendingCalls {
			o.opts.Logger.Info("tool.execute", "tool", call.Name, "iteration", iteration)

			result := o.registry.Execute(ctx, call.Name, call.Arguments)
			if !emit(ctx, out, core.OrchestratorToolResultEvent(call.Name, result)) {
				return
			}
			messages = append(messages, core.ToolMessage(call.ID, call.Name, encodeResult(result)))
		}
	}

	o.opts.Logger.Warn("turn.iteration_cap", "max", o.opts.MaxIterations)
	emit(ctx, out, core.OrchestratorErrorEvent("Maximum tool iterations reached. Please try a simpler request."))
}

// resolveTools narrows the advertised tool schemas by category. The
// reduction is advisory: a misclassification costs efficiency, never
// correctness.
func (o *Orchestrator) resolveTools(category classify.QueryCategory) []core.ToolSchema {
	names, all := classify.ToolsForCategory(category)
	if all {
		return o.registry.Schemas(nil)
	}
	if len(names) == 0 {
		names = coreTools
	}
	return o.registry.Schemas(names)
}

// resolvePrompt picks the persona prompt and appends relevant prior-session
// summaries when a searcher is configured. Search failures degrade to no
// augmentation.
func (o *Orchestrator) resolvePrompt(ctx context.Context, category classify.QueryCategory, userText string) string {
	base := o.opts.SystemPrompt
	if category == classify.CategorySimple {
		base = o.opts.ShortSystemPrompt
	}

	if o.opts.Searcher == nil {
		return base
	}
	hits, err := o.opts.Searcher.SearchRelevant(ctx, userText, o.opts.MaxSummaries, o.opts.MinScore)
	if err != nil {
		o.opts.Logger.Warn("turn.search", "error", err.Error())
		return base
	}
	if len(hits) == 0 {
		return base
	}

	var sb strings.Builder
	sb.WriteString(base)
	sb.WriteString("\n\n## Relevant context from previous conversations\n")
	for _, hit := range hits {
		sb.WriteString("- ")
		if len(hit.Topics) > 0 {
			sb.WriteString("[")
			sb.WriteString(strings.Join(hit.Topics, ", "))
			sb.WriteString("] ")
		}
		sb.WriteString(hit.Summary)
		sb.WriteString("\n")
	}
	return sb.String()
}

func encodeResult(result core.ToolResult) string {
	encoded, err := json.Marshal(result)
	if err != nil {
		return fmt.Sprintf(`{"status":"error","error":%q}`, err.Error())
	}
	return string(encoded)
}

// emit forwards an event unless the caller has gone away. The up-front
// Err check keeps the outcome deterministic when the context is already
// cancelled but buffer space remains.
func emit(ctx context.Context, out chan<- core.OrchestratorEvent, event core.OrchestratorEvent) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case out <- event:
		return true
	}
}
