// Package memory provides summary storage with relevance search used to
// augment the system prompt with prior-conversation context.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/butler-ai/butler/core"
)

// DefaultMinScore is the relevance cutoff below which summaries are not
// surfaced. Tunable policy, not protocol.
const DefaultMinScore = 0.3

// storedSummary is the internal representation persisted by InMemoryStore.
type storedSummary struct {
	summary   string
	topics    []string
	createdAt time.Time
}

// InMemoryStore is a process-local summary store. Relevance is scored by
// word overlap between the query and the summary text plus its topics, which
// is suitable for tests and single-node setups; swap for a vector index when
// real semantic retrieval is needed.
//
// Concurrency: protected by RWMutex.
type InMemoryStore struct {
	mu        sync.RWMutex
	summaries []storedSummary
}

// NewInMemoryStore creates a new in-memory summary store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Store appends a conversation summary with its topics.
func (m *InMemoryStore) Store(summary string, topics []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries = append(m.summaries, storedSummary{
		summary:   summary,
		topics:    append([]string(nil), topics...),
		createdAt: time.Now(),
	})
}

// Len reports the number of stored summaries.
func (m *InMemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.summaries)
}

// SearchRelevant returns up to limit summaries scoring at or above minScore
// against the query, best first. An empty query matches nothing.
func (m *InMemoryStore) SearchRelevant(_ context.Context, query string, limit int, minScore float64) ([]core.SummaryHit, error) {
	terms := tokenize(query)
	if len(terms) == 0 {
		return nil, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	hits := make([]core.SummaryHit, 0, len(m.summaries))
	for _, stored := range m.summaries {
		score := overlapScore(terms, stored)
		if score < minScore {
			continue
		}
		hits = append(hits, core.SummaryHit{
			Summary:   stored.summary,
			Topics:    append([]string(nil), stored.topics...),
			CreatedAt: stored.createdAt,
			Score:     score,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Score > hits[j].Score })
	if limit > 0 && len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

// overlapScore is the fraction of query terms found in the summary text or
// topics.
func overlapScore(terms []string, stored storedSummary) float64 {
	haystack := strings.ToLower(stored.summary)
	for _, topic := range stored.topics {
		haystack += " " + strings.ToLower(topic)
	}

	matched := 0
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

func tokenize(query string) []string {
	fields := strings.Fields(strings.ToLower(query))
	terms := fields[:0]
	for _, f := range fields {
		f = strings.Trim(f, ".,!?;:'\"()")
		if len(f) >= 3 {
			terms = append(terms, f)
		}
	}
	return terms
}
