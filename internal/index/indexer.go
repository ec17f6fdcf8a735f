package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/chunker"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/embedding"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/llm"
)

var (
	ErrNoEpisodes = errors.New("no episodes extracted from source")
)

// embedBatchSize bounds how many episode texts go into one embedding call.
const embedBatchSize = 32

// Indexer runs the offline pipeline for one source text: chunk, extract,
// embed, persist. Sources are processed one at a time; any embedding failure
// aborts the whole source so a half-embedded index is never registered.
type Indexer struct {
	store     *Store
	embedder  embedding.Embedder
	extractor *episode.Extractor
	chunkSize int
}

// Summary reports what one indexing run did.
type Summary struct {
	Key      string
	Segments int
	Episodes int
	Skipped  int
}

// NewIndexer creates an indexer over the given store and collaborators.
func NewIndexer(store *Store, embedder embedding.Embedder, generator llm.LLM, chunkSize int) *Indexer {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultMaxChars
	}
	return &Indexer{
		store:     store,
		embedder:  embedder,
		extractor: episode.NewExtractor(generator),
		chunkSize: chunkSize,
	}
}

// SourceKeyFromPath derives a source key from the file name:
// "texts/Shiv Puran.txt" becomes "shiv-puran".
func SourceKeyFromPath(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return episode.Slugify(base)
}

// IndexSource reads, chunks, extracts, embeds, and persists one source text.
// On any error after extraction begins, partial temp files are discarded and
// nothing is registered.
func (ix *Indexer) IndexSource(ctx context.Context, path, key string) (*Summary, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	if key == "" {
		key = SourceKeyFromPath(path)
	}

	segments := chunker.Chunk(string(content), ix.chunkSize)
	summary := &Summary{Key: key, Segments: len(segments)}

	var episodes []episode.Episode
	for _, seg := range segments {
		extracted, skipped, err := ix.extractor.Extract(ctx, seg, key)
		if err != nil {
			return summary, err
		}
		summary.Skipped += skipped
		episodes = append(episodes, extracted...)
	}
	if len(episodes) == 0 {
		return summary, fmt.Errorf("%w: %s", ErrNoEpisodes, key)
	}
	summary.Episodes = len(episodes)

	vectors, err := ix.embedEpisodes(ctx, episodes)
	if err != nil {
		ix.store.DiscardTemp(key)
		return summary, err
	}

	meta := Meta{
		Provider:    ix.embedder.Provider(),
		Model:       ix.embedder.Model(),
		Dimensions:  ix.embedder.Dimension(),
		ChunkSize:   ix.chunkSize,
		Fingerprint: Fingerprint(content),
		IndexedAt:   time.Now().UTC(),
	}

	err = ix.store.WriteSource(
		RegistryEntry{
			Key:       key,
			Path:      path,
			Provider:  meta.Provider,
			Model:     meta.Model,
			Episodes:  len(episodes),
			IndexedAt: meta.IndexedAt,
		},
		&SourceIndex{Episodes: episodes, Meta: meta},
		&Embeddings{Vectors: vectors, Meta: meta},
	)
	if err != nil {
		ix.store.DiscardTemp(key)
		return summary, err
	}

	return summary, nil
}

func (ix *Indexer) embedEpisodes(ctx context.Context, episodes []episode.Episode) (map[string][]float32, error) {
	vectors := make(map[string][]float32, len(episodes))

	for start := 0; start < len(episodes); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(episodes) {
			end = len(episodes)
		}
		batch := episodes[start:end]

		texts := make([]string, len(batch))
		for i, ep := range batch {
			texts[i] = ep.EmbeddingText()
		}

		embedded, err := ix.embedder.Embed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed episodes %d-%d: %w", start, end-1, err)
		}
		for i, vec := range embedded {
			vectors[batch[i].ID] = vec
		}
	}

	return vectors, nil
}
