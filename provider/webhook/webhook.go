// Package webhook implements provider.Provider over a chat webhook that
// answers whole messages synchronously. It predates the SDK adapters and is
// kept for setups where the model runs behind an automation workflow.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

// Options configure the webhook provider.
type Options struct {
	// SessionID is forwarded so the remote side can keep its own context.
	SessionID string
	Timeout   time.Duration
	// HTTPClient overrides the default client (tests).
	HTTPClient *http.Client
}

// Provider posts the last user message to a webhook and returns the reply.
// Tool calling is not supported; the remote workflow does its own tool work.
type Provider struct {
	url    string
	opts   Options
	client *http.Client
}

// New constructs a webhook provider for the given URL.
func New(url string, optFns ...func(o *Options)) *Provider {
	opts := Options{
		Timeout: 60 * time.Second,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{}
	}
	return &Provider{url: url, opts: opts, client: client}
}

// Chat implements non-streaming chat.
func (p *Provider) Chat(ctx context.Context, req provider.Request) (*provider.Reply, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("no messages provided")
	}

	text, err := p.send(ctx, req.Messages[len(req.Messages)-1].Content)
	if err != nil {
		return nil, err
	}
	return &provider.Reply{Text: text}, nil
}

// ChatStream implements the streaming contract over a synchronous backend:
// the whole reply arrives at once and is emitted as a single token.
func (p *Provider) ChatStream(ctx context.Context, req provider.Request) <-chan core.StreamEvent {
	out := make(chan core.StreamEvent, 4)

	go func() {
		defer close(out)

		out <- core.StartEvent()

		if len(req.Messages) == 0 {
			out <- core.ErrorEvent("no messages provided")
			return
		}
		text, err := p.send(ctx, req.Messages[len(req.Messages)-1].Content)
		if err != nil {
			out <- core.ErrorEvent(err.Error())
			return
		}
		out <- core.TokenEvent(text)
		out <- core.EndEvent(text)
	}()

	return out
}

// send posts the message and extracts a reply string from whatever shape the
// webhook returns.
func (p *Provider) send(ctx context.Context, message string) (string, error) {
	payload, err := json.Marshal(map[string]string{
		"message":   message,
		"sessionId": p.opts.SessionID,
	})
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.Timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("webhook request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("webhook error: %d", resp.StatusCode)
	}
	return extractReply(body), nil
}

// extractReply tolerates the response formats seen in the wild: a JSON
// object with response/output/text keys, a bare JSON string, any object with
// a string value, or plain text.
func extractReply(body []byte) string {
	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return string(body)
	}

	switch v := decoded.(type) {
	case string:
		return v
	case map[string]any:
		for _, key := range []string{"response", "output", "text"} {
			if s, ok := v[key].(string); ok && s != "" {
				return s
			}
		}
		for _, value := range v {
			if s, ok := value.(string); ok && s != "" {
				return s
			}
		}
		return "No response received"
	default:
		return string(body)
	}
}

// Info implements Provider.
func (p *Provider) Info() provider.Info {
	return provider.Info{
		Name:          "webhook",
		Provider:      "webhook",
		SupportsTools: false,
	}
}
