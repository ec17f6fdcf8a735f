// Package retrieval ranks indexed episodes against a query text by cosine
// similarity. Retrieval is a pure read over the persisted indexes: it loads
// every registered source, drops episodes whose embedding provider or model
// does not match the query embedder, and returns a ranked top-K.
package retrieval

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/embedding"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/index"
)

// DefaultTopK is the retrieval depth used when none is configured.
const DefaultTopK = 8

// Match is one retrieved episode with its similarity score.
type Match struct {
	Episode   episode.Episode
	SourceKey string
	Score     float64
}

// Result distinguishes "no grounding available" from a ranked result set, so
// downstream code never has to infer state from an empty slice.
type Result struct {
	// Grounded is false when no registered source was compatible with the
	// query embedder (or no sources are registered at all). That is a
	// degradation, not an error: generation proceeds without grounding.
	Grounded bool

	Matches []Match
}

// Engine retrieves episodes for a query across all registered sources.
type Engine struct {
	store    *index.Store
	embedder embedding.Embedder
}

// NewEngine creates a retrieval engine over the given store and embedder.
func NewEngine(store *index.Store, embedder embedding.Embedder) *Engine {
	return &Engine{store: store, embedder: embedder}
}

// Retrieve embeds the query once and ranks every compatible episode by
// cosine similarity, descending. Ties break by source registration order,
// then episode order within a source. Sources indexed under a different
// provider or model are silently excluded: cross-provider vectors are not
// comparable. Zero compatible episodes yields an ungrounded Result, not an
// error.
func (e *Engine) Retrieve(ctx context.Context, queryText string, k int) (*Result, error) {
	if k <= 0 {
		k = DefaultTopK
	}

	reg, err := e.store.LoadRegistry()
	if err != nil {
		return nil, err
	}
	if len(reg.Sources) == 0 {
		return &Result{}, nil
	}

	vectors, err := e.embedder.Embed(ctx, []string{queryText})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	query := vectors[0]

	var matches []Match
	compatible := false
	for _, src := range reg.Sources {
		idx, emb, err := e.store.LoadSource(src.Key)
		if err != nil {
			return nil, err
		}
		if idx.Meta.Provider != e.embedder.Provider() || idx.Meta.Model != e.embedder.Model() {
			continue
		}
		compatible = true

		for _, ep := range idx.Episodes {
			vec, ok := emb.Vectors[ep.ID]
			if !ok || len(vec) != len(query) {
				continue
			}
			matches = append(matches, Match{
				Episode:   ep,
				SourceKey: src.Key,
				Score:     CosineSimilarity(query, vec),
			})
		}
	}

	// Stable sort keeps registration/insertion order on score ties.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > k {
		matches = matches[:k]
	}

	return &Result{Grounded: compatible && len(matches) > 0, Matches: matches}, nil
}

// CosineSimilarity returns the normalized dot product of two vectors, in
// [-1, 1]. A zero vector scores 0 against everything.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
