package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/butler-ai/butler/core"
	"github.com/butler-ai/butler/provider"
)

func request(text string) provider.Request {
	return provider.Request{Messages: []core.ChatMessage{core.UserMessage(text)}}
}

func TestChat_PostsMessageAndSession(t *testing.T) {
	var payload map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		_, _ = w.Write([]byte(`{"response":"Certainly, Sir."}`))
	}))
	defer srv.Close()

	p := New(srv.URL, func(o *Options) { o.SessionID = "s1" })
	reply, err := p.Chat(context.Background(), request("hello"))
	require.NoError(t, err)
	assert.Equal(t, "Certainly, Sir.", reply.Text)
	assert.Equal(t, "hello", payload["message"])
	assert.Equal(t, "s1", payload["sessionId"])
}

func TestChat_FallbackKeysAndPlainText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"output key", `{"output":"from output"}`, "from output"},
		{"text key", `{"text":"from text"}`, "from text"},
		{"bare string", `"quoted reply"`, "quoted reply"},
		{"plain text", "not json at all", "not json at all"},
		{"no strings", `{"count":3}`, "No response received"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			reply, err := New(srv.URL).Chat(context.Background(), request("hello"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, reply.Text)
		})
	}
}

func TestChat_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Chat(context.Background(), request("hello"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestChatStream_FakesStreamShape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"response":"whole answer"}`))
	}))
	defer srv.Close()

	var events []core.StreamEvent
	for event := range New(srv.URL).ChatStream(context.Background(), request("hello")) {
		events = append(events, event)
	}

	require.Len(t, events, 3)
	assert.Equal(t, core.StreamStart, events[0].Type)
	assert.Equal(t, core.StreamToken, events[1].Type)
	assert.Equal(t, "whole answer", events[1].Content)
	assert.Equal(t, core.StreamEnd, events[2].Type)
	assert.Equal(t, "whole answer", events[2].FullResponse)
}

func TestChatStream_ErrorTerminates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	var events []core.StreamEvent
	for event := range New(srv.URL).ChatStream(context.Background(), request("hello")) {
		events = append(events, event)
	}

	require.Len(t, events, 2)
	assert.Equal(t, core.StreamStart, events[0].Type)
	assert.Equal(t, core.StreamError, events[1].Type)
}
