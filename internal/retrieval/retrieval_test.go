package retrieval

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/embedding"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/index"
)

func newTestStore(t *testing.T) *index.Store {
	t.Helper()
	return index.NewStore(t.TempDir())
}

func writeTestSource(t *testing.T, store *index.Store, key, provider, model string, ids []string, vectors [][]float32) {
	t.Helper()
	meta := index.Meta{
		Provider:   provider,
		Model:      model,
		Dimensions: len(vectors[0]),
		IndexedAt:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	episodes := make([]episode.Episode, len(ids))
	vecs := make(map[string][]float32, len(ids))
	for i, id := range ids {
		episodes[i] = episode.Episode{
			ID:       id,
			Type:     episode.TypeStory,
			Priority: episode.PriorityMedium,
			Title:    episode.Localized{EN: id},
			Summary:  episode.Localized{EN: "about " + id},
		}
		vecs[id] = vectors[i]
	}
	err := store.WriteSource(
		index.RegistryEntry{Key: key, Provider: provider, Model: model, Episodes: len(ids), IndexedAt: meta.IndexedAt},
		&index.SourceIndex{Episodes: episodes, Meta: meta},
		&index.Embeddings{Vectors: vecs, Meta: meta},
	)
	if err != nil {
		t.Fatal(err)
	}
}

func queryEmbedder(vector []float32) *embedding.MockEmbedder {
	return embedding.NewMockEmbedder(map[string][]float32{"query": vector})
}

func TestEngine_Retrieve_RankingCorrectness(t *testing.T) {
	store := newTestStore(t)
	writeTestSource(t, store, "src", "mock", "mock-embed",
		[]string{"first", "second", "third"},
		[][]float32{{1, 0}, {0, 1}, {0.9, 0.1}},
	)

	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))
	result, err := engine.Retrieve(context.Background(), "query", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Grounded {
		t.Fatal("expected grounded result")
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}
	if result.Matches[0].Episode.ID != "first" || result.Matches[1].Episode.ID != "third" {
		t.Errorf("wrong ranking: %s, %s", result.Matches[0].Episode.ID, result.Matches[1].Episode.ID)
	}
	if math.Abs(result.Matches[0].Score-1.0) > 1e-6 {
		t.Errorf("top score: got %f, want 1.0", result.Matches[0].Score)
	}
	if math.Abs(result.Matches[1].Score-0.99388) > 1e-3 {
		t.Errorf("second score: got %f, want ≈0.994", result.Matches[1].Score)
	}
}

func TestEngine_Retrieve_ProviderIsolation(t *testing.T) {
	store := newTestStore(t)
	// Indexed under a different provider; identical vectors.
	writeTestSource(t, store, "foreign", "openai", "text-embedding-3-small",
		[]string{"identical"}, [][]float32{{1, 0}})

	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))
	result, err := engine.Retrieve(context.Background(), "query", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Grounded {
		t.Error("mismatched provider must not ground the query")
	}
	if len(result.Matches) != 0 {
		t.Errorf("episode from mismatched provider returned: %#v", result.Matches)
	}
}

func TestEngine_Retrieve_ModelMismatchExcluded(t *testing.T) {
	store := newTestStore(t)
	writeTestSource(t, store, "old-model", "mock", "mock-embed-v1",
		[]string{"ep"}, [][]float32{{1, 0}})

	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))
	result, err := engine.Retrieve(context.Background(), "query", 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) != 0 {
		t.Error("episode embedded under a different model returned")
	}
}

func TestEngine_Retrieve_NoSourcesIsEmptyNotError(t *testing.T) {
	store := newTestStore(t)
	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))

	result, err := engine.Retrieve(context.Background(), "query", 8)
	if err != nil {
		t.Fatalf("zero registered sources must not error: %v", err)
	}
	if result.Grounded || len(result.Matches) != 0 {
		t.Errorf("expected ungrounded empty result, got %#v", result)
	}
}

func TestEngine_Retrieve_TieBreakByRegistrationOrder(t *testing.T) {
	store := newTestStore(t)
	// Two sources with identically scoring episodes; the earlier
	// registered source must rank first.
	writeTestSource(t, store, "earlier", "mock", "mock-embed", []string{"a"}, [][]float32{{1, 0}})
	writeTestSource(t, store, "later", "mock", "mock-embed", []string{"b"}, [][]float32{{1, 0}})

	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))
	result, err := engine.Retrieve(context.Background(), "query", 8)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Matches))
	}
	if result.Matches[0].SourceKey != "earlier" || result.Matches[1].SourceKey != "later" {
		t.Errorf("tie not broken by registration order: %s, %s",
			result.Matches[0].SourceKey, result.Matches[1].SourceKey)
	}
}

func TestEngine_Retrieve_DefaultTopK(t *testing.T) {
	store := newTestStore(t)
	ids := make([]string, 12)
	vectors := make([][]float32, 12)
	for i := range ids {
		ids[i] = string(rune('a' + i))
		vectors[i] = []float32{1, float32(i) * 0.01}
	}
	writeTestSource(t, store, "many", "mock", "mock-embed", ids, vectors)

	engine := NewEngine(store, queryEmbedder([]float32{1, 0}))
	result, err := engine.Retrieve(context.Background(), "query", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Matches) != DefaultTopK {
		t.Errorf("expected default top-K of %d, got %d", DefaultTopK, len(result.Matches))
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{0.6, 0.8}, []float32{0.6, 0.8}, 1.0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0.0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1.0},
		{"zero vector", []float32{0, 0}, []float32{1, 0}, 0.0},
		{"length mismatch", []float32{1}, []float32{1, 0}, 0.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CosineSimilarity(tt.a, tt.b); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}
