// Package mock provides a lightweight in-memory Provider useful for tests
// and examples.
package mock

import (
	"context"
	"fmt"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

// Provider is a deterministic Provider implementation with canned responses.
type Provider struct {
	name      string
	responses map[string]string
}

// New constructs a mock provider.
func New(name string) *Provider {
	return &Provider{
		name:      name,
		responses: make(map[string]string),
	}
}

// AddResponse registers a deterministic canned completion for an input prompt.
func (p *Provider) AddResponse(prompt, response string) { p.responses[prompt] = response }

func (p *Provider) respond(req provider.Request) (string, error) {
	if len(req.Messages) == 0 {
		return "", fmt.Errorf("no messages provided")
	}
	input := req.Messages[len(req.Messages)-1].Content
	if canned, ok := p.responses[input]; ok {
		return canned, nil
	}
	return fmt.Sprintf("[Mock] Received: %s", input), nil
}

// Chat implements non-streaming chat.
func (p *Provider) Chat(_ context.Context, req provider.Request) (*provider.Reply, error) {
	full, err := p.respond(req)
	if err != nil {
		return nil, err
	}
	return &provider.Reply{Text: full}, nil
}

// ChatStream implements streaming chat; the canned response is emitted one
// rune at a time.
func (p *Provider) ChatStream(ctx context.Context, req provider.Request) <-chan core.StreamEvent {
	out := make(chan core.StreamEvent, 16)

	go func() {
		defer close(out)

		out <- core.StartEvent()

		full, err := p.respond(req)
		if err != nil {
			out <- core.ErrorEvent(err.Error())
			return
		}
		for _, r := range full {
			select {
			case <-ctx.Done():
				out <- core.ErrorEvent(ctx.Err().Error())
				return
			case out <- core.TokenEvent(string(r)):
			}
		}
		out <- core.EndEvent(full)
	}()

	return out
}

// Info implements Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Name:          p.name,
		Provider:      "mock",
		SupportsTools: false,
	}
}
