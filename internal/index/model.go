// Package index persists episode indexes, their embedding vectors, and the
// registry of indexed sources. Index files are human-reviewable JSON; the
// vectors live in a parallel file per source so the index stays diffable.
package index

import (
	"errors"
	"time"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
)

var (
	ErrSourceNotIndexed = errors.New("source is not indexed")
	ErrIndexCorrupt     = errors.New("index file is corrupt")
)

// Meta is the provider/model fingerprint stamped on every index and
// embeddings file. Vectors from one provider/model pair are never compared
// with another's.
type Meta struct {
	Provider    string    `json:"provider"`
	Model       string    `json:"model"`
	Dimensions  int       `json:"dimensions"`
	ChunkSize   int       `json:"chunk_size"`
	Fingerprint string    `json:"fingerprint"`
	IndexedAt   time.Time `json:"indexed_at"`
}

// SourceIndex is the persisted index for one source text: its ordered
// episodes plus the meta block.
type SourceIndex struct {
	Episodes []episode.Episode `json:"episodes"`
	Meta     Meta              `json:"_meta"`
}

// Embeddings is the persisted vector file for one source: vectors keyed by
// episode id, parallel to the index file.
type Embeddings struct {
	Vectors map[string][]float32 `json:"vectors"`
	Meta    Meta                 `json:"_meta"`
}

// RegistryEntry is the lightweight descriptor of one indexed source.
type RegistryEntry struct {
	Key       string    `json:"key"`
	Path      string    `json:"path"`
	Provider  string    `json:"provider"`
	Model     string    `json:"model"`
	Episodes  int       `json:"episodes"`
	IndexedAt time.Time `json:"indexed_at"`
}

// Registry lists every indexed source in registration order. The order is
// load-bearing: retrieval breaks score ties by it.
type Registry struct {
	Sources []RegistryEntry `json:"sources"`
}

// Lookup returns the entry for key, if registered.
func (r *Registry) Lookup(key string) (RegistryEntry, bool) {
	for _, e := range r.Sources {
		if e.Key == key {
			return e, true
		}
	}
	return RegistryEntry{}, false
}

// Upsert replaces the entry for key in place, or appends a new one. Existing
// keys keep their registration position so re-indexing a source does not
// change retrieval tie-break order.
func (r *Registry) Upsert(entry RegistryEntry) {
	for i, e := range r.Sources {
		if e.Key == entry.Key {
			r.Sources[i] = entry
			return
		}
	}
	r.Sources = append(r.Sources, entry)
}
