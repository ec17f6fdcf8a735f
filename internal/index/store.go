package index

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/fileutil"
)

// Store reads and writes index artifacts under <projectDir>/_data/episodes.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the given project directory.
func NewStore(projectDir string) *Store {
	return &Store{dir: filepath.Join(projectDir, "_data", "episodes")}
}

// Dir returns the directory holding all index artifacts.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) indexPath(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) embeddingsPath(key string) string {
	return filepath.Join(s.dir, key+".embeddings.json")
}

func (s *Store) registryPath() string {
	return filepath.Join(s.dir, "registry.json")
}

// LoadRegistry reads the registry. A missing file is an empty registry, not
// an error: retrieval treats it as "no grounding available".
func (s *Store) LoadRegistry() (*Registry, error) {
	data, err := os.ReadFile(s.registryPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Registry{}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("%w: registry: %v", ErrIndexCorrupt, err)
	}
	return &reg, nil
}

// LoadSource reads the index and embeddings files for one registered key.
func (s *Store) LoadSource(key string) (*SourceIndex, *Embeddings, error) {
	data, err := os.ReadFile(s.indexPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %s", ErrSourceNotIndexed, key)
		}
		return nil, nil, fmt.Errorf("read index %s: %w", key, err)
	}
	var idx SourceIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, nil, fmt.Errorf("%w: %s: %v", ErrIndexCorrupt, key, err)
	}

	data, err = os.ReadFile(s.embeddingsPath(key))
	if err != nil {
		return nil, nil, fmt.Errorf("read embeddings %s: %w", key, err)
	}
	var emb Embeddings
	if err := json.Unmarshal(data, &emb); err != nil {
		return nil, nil, fmt.Errorf("%w: %s embeddings: %v", ErrIndexCorrupt, key, err)
	}

	return &idx, &emb, nil
}

// WriteSource persists a freshly indexed source and registers it. The index
// and embeddings files land first, the registry last, each atomically, so a
// registry entry never points at missing data. Re-indexing a key overwrites
// its files entirely.
func (s *Store) WriteSource(entry RegistryEntry, idx *SourceIndex, emb *Embeddings) error {
	reg, err := s.LoadRegistry()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.indexPath(entry.Key), data); err != nil {
		return fmt.Errorf("write index %s: %w", entry.Key, err)
	}

	data, err = json.MarshalIndent(emb, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal embeddings: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.embeddingsPath(entry.Key), data); err != nil {
		return fmt.Errorf("write embeddings %s: %w", entry.Key, err)
	}

	reg.Upsert(entry)
	data, err = json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.registryPath(), data); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	return nil
}

// DiscardTemp removes any temp files a failed indexing run left behind for
// the key. An incompletely embedded source must never be registered.
func (s *Store) DiscardTemp(key string) {
	fileutil.RemoveTemp(s.indexPath(key))
	fileutil.RemoveTemp(s.embeddingsPath(key))
	fileutil.RemoveTemp(s.registryPath())
}

// Fingerprint returns the content fingerprint recorded in _meta, letting
// callers detect a stale index without re-embedding.
func Fingerprint(content []byte) string {
	return fmt.Sprintf("sha256:%x", sha256.Sum256(content))
}
