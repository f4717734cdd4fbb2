package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchRelevant_RanksByOverlap(t *testing.T) {
	store := NewInMemoryStore()
	store.Store("Configured the jellyfin media server libraries", []string{"jellyfin", "media"})
	store.Store("Debugged docker compose networking for the media stack", []string{"docker"})
	store.Store("Planned a holiday itinerary", []string{"travel"})

	hits, err := store.SearchRelevant(context.Background(), "docker media networking", 3, 0.3)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Contains(t, hits[0].Summary, "docker compose")
	assert.GreaterOrEqual(t, hits[0].Score, hits[1].Score)
}

func TestSearchRelevant_MinScoreFiltersOut(t *testing.T) {
	store := NewInMemoryStore()
	store.Store("Planned a holiday itinerary", []string{"travel"})

	hits, err := store.SearchRelevant(context.Background(), "docker containers on the server", 3, 0.3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchRelevant_LimitApplies(t *testing.T) {
	store := NewInMemoryStore()
	for i := 0; i < 5; i++ {
		store.Store("docker discussion", []string{"docker"})
	}

	hits, err := store.SearchRelevant(context.Background(), "docker", 3, 0.3)
	require.NoError(t, err)
	assert.Len(t, hits, 3)
}

func TestSearchRelevant_EmptyQuery(t *testing.T) {
	store := NewInMemoryStore()
	store.Store("anything", nil)

	hits, err := store.SearchRelevant(context.Background(), "", 3, 0.0)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchRelevant_TopicsCount(t *testing.T) {
	store := NewInMemoryStore()
	store.Store("A long chat about the home server", []string{"postgresql"})

	hits, err := store.SearchRelevant(context.Background(), "postgresql", 3, 0.3)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, []string{"postgresql"}, hits[0].Topics)
	assert.False(t, hits[0].CreatedAt.IsZero())
}
