// Package session houses conversation history storage. Only user and
// assistant turns are persisted; tool traffic is transient per request.
//
// Add additional backends (Redis, Postgres, etc.) without changing calling
// code; the orchestrator consumes plain message slices.
package session

import (
	"sync"

	"github.com/butler-ai/butler/core"
)

// InMemoryStore is a volatile history store keeping messages in a process
// local map. It is safe for concurrent access and best suited for tests or
// ephemeral demo servers. Returned slices are cloned to prevent external
// mutation of internal state.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]core.ChatMessage
}

// NewInMemoryStore constructs an empty in-memory history store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string][]core.ChatMessage)}
}

// History returns a copy of the session's messages, oldest first. Unknown
// sessions yield an empty history.
func (s *InMemoryStore) History(sessionID string) []core.ChatMessage {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneMessages(s.sessions[sessionID])
}

// Append adds a user or assistant turn to the session, creating it lazily.
func (s *InMemoryStore) Append(sessionID string, msg core.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = append(s.sessions[sessionID], msg)
}

// Clear removes a session's history.
func (s *InMemoryStore) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len reports the number of messages held for the session.
func (s *InMemoryStore) Len(sessionID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID])
}

func cloneMessages(messages []core.ChatMessage) []core.ChatMessage {
	if len(messages) == 0 {
		return nil
	}
	out := make([]core.ChatMessage, len(messages))
	copy(out, messages)
	for i := range out {
		if len(out[i].ToolCalls) > 0 {
			out[i].ToolCalls = append([]core.ToolCall(nil), out[i].ToolCalls...)
		}
	}
	return out
}
