// Package butler provides a high-level façade over the orchestrator and its
// collaborators (tool registry, session history, summary memory & logging)
// enabling rapid construction of a tool-using assistant. Most applications
// interact with this package by:
//  1. Creating a Butler via New() with a provider name (openai, anthropic,
//     gemini, webhook, mock)
//  2. Optionally registering extra tools on the registry
//  3. Calling Chat (streaming) or ChatSync per user message
//
// The façade delegates the agentic loop to orchestrator.Orchestrator while
// keeping setup ergonomics concise. All defaults are safe for local
// development and testing; production deployments typically supply a remote
// tool executor, a summary searcher and a structured logger.
package butler

import (
	"context"
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/logging"
	"github.com/butler-ai/butler/memory"
	"github.com/butler-ai/butler/orchestrator"
	"github.com/butler-ai/butler/provider"
	providerAnthropic "github.com/butler-ai/butler/provider/anthropic"
	providerGemini "github.com/butler-ai/butler/provider/gemini"
	providerMock "github.com/butler-ai/butler/provider/mock"
	providerOpenAI "github.com/butler-ai/butler/provider/openai"
	providerWebhook "github.com/butler-ai/butler/provider/webhook"
	"github.com/butler-ai/butler/session"
	"github.com/butler-ai/butler/tool"
)

// ProviderConfig selects and parameterizes a chat backend for NewProvider.
type ProviderConfig struct {
	// Name picks the backend: openai, anthropic, gemini, webhook or mock.
	Name string
	// Model overrides the backend's default model id.
	Model string
	// APIKey overrides the backend's environment-derived credential.
	APIKey string
	// WebhookURL is required for the webhook backend.
	WebhookURL string
}

// NewProvider is the factory keyed by provider name. Unknown names are an
// error rather than a silent fallback.
func NewProvider(ctx context.Context, cfg ProviderConfig) (provider.Provider, error) {
	switch cfg.Name {
	case "openai":
		return providerOpenAI.New(func(o *providerOpenAI.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		return providerAnthropic.New(func(o *providerAnthropic.Options) {
			if cfg.Model != "" {
				o.Model = anthropicsdk.Model(cfg.Model)
			}
			o.APIKey = cfg.APIKey
		}), nil
	case "gemini":
		return providerGemini.New(ctx, func(o *providerGemini.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
			o.APIKey = cfg.APIKey
		})
	case "webhook":
		if cfg.WebhookURL == "" {
			return nil, fmt.Errorf("webhook provider requires a webhook URL")
		}
		return providerWebhook.New(cfg.WebhookURL), nil
	case "mock":
		name := cfg.Model
		if name == "" {
			name = "mock"
		}
		return providerMock.New(name), nil
	default:
		return nil, fmt.Errorf("unknown provider: %q", cfg.Name)
	}
}

// Options configures the Butler instance.
type Options struct {
	// Registry defaults to builtins only (calculator, get_current_time).
	Registry *tool.Registry
	// RemoteExecutor, when set, registers the remote tool catalogue.
	RemoteExecutor *tool.RemoteExecutor
	// Sessions defaults to an in-memory history store.
	Sessions *session.InMemoryStore
	// Searcher augments prompts with prior-session summaries. Nil disables.
	Searcher orchestrator.Searcher
	// MaxIterations caps model round-trips per turn.
	MaxIterations int
	// Logger defaults to NoOp.
	Logger logging.Logger
}

// Butler is the high-level façade aggregating the orchestrator and services.
type Butler struct {
	opts         Options
	provider     provider.Provider
	registry     *tool.Registry
	sessions     *session.InMemoryStore
	orchestrator *orchestrator.Orchestrator
}

// New creates a Butler around the given provider with optional overrides.
// Any unset service is initialized with an in-memory implementation.
func New(p provider.Provider, optFns ...func(o *Options)) *Butler {
	opts := Options{
		Sessions:      session.NewInMemoryStore(),
		MaxIterations: 10,
		Logger:        logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	registry := opts.Registry
	if registry == nil {
		registry = tool.NewRegistry(func(o *tool.RegistryOptions) { o.Logger = opts.Logger })
		tool.RegisterBuiltins(registry)
	}
	if opts.RemoteExecutor != nil {
		tool.RegisterRemoteTools(registry, opts.RemoteExecutor)
	}

	orch := orchestrator.New(p, registry, func(o *orchestrator.Options) {
		o.MaxIterations = opts.MaxIterations
		o.Searcher = opts.Searcher
		o.Logger = opts.Logger
	})

	return &Butler{
		opts:         opts,
		provider:     p,
		registry:     registry,
		sessions:     opts.Sessions,
		orchestrator: orch,
	}
}

// Registry exposes the tool registry for additional registrations.
func (b *Butler) Registry() *tool.Registry { return b.registry }

// Chat runs one streaming turn for the session. User and assistant turns are
// persisted to the session history; the assistant turn is recorded once the
// terminal end event arrives.
func (b *Butler) Chat(ctx context.Context, sessionID, userText string) <-chan core.OrchestratorEvent {
	history := b.sessions.History(sessionID)
	b.sessions.Append(sessionID, core.UserMessage(userText))

	out := make(chan core.OrchestratorEvent, 32)
	go func() {
		defer close(out)
		for event := range b.orchestrator.Process(ctx, userText, history) {
			if event.Type == core.EventEnd {
				b.sessions.Append(sessionID, core.AssistantMessage(event.FullResponse))
			}
			select {
			case <-ctx.Done():
				return
			case out <- event:
			}
		}
	}()
	return out
}

// ChatSync runs one turn and blocks until the final response.
func (b *Butler) ChatSync(ctx context.Context, sessionID, userText string) (string, error) {
	var full string
	var failure error
	ended := false
	for event := range b.Chat(ctx, sessionID, userText) {
		switch event.Type {
		case core.EventEnd:
			full = event.FullResponse
			ended = true
		case core.EventError:
			failure = fmt.Errorf("%s", event.Content)
		}
	}
	if failure != nil {
		return "", failure
	}
	if !ended {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("turn ended without a response")
	}
	return full, nil
}

// NewMemoryStore returns an in-memory summary store suitable as Searcher.
func NewMemoryStore() *memory.InMemoryStore { return memory.NewInMemoryStore() }
