// Package verse reads and writes verse markdown files: YAML frontmatter
// between --- markers followed by a body. The frontmatter is kept as a YAML
// node tree so fields this tool does not own survive a rewrite untouched and
// in order.
package verse

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/fileutil"
)

var (
	ErrVerseNotFound  = errors.New("verse file not found")
	ErrBadFrontmatter = errors.New("could not parse verse frontmatter")
)

// File is one parsed verse markdown file.
type File struct {
	// ID is the verse id, derived from the file name (e.g. "chaupai-15").
	ID string

	// Path is where the file lives on disk.
	Path string

	// Body is everything after the closing frontmatter marker, verbatim.
	Body string

	doc *yaml.Node // frontmatter document node, nil when absent
}

// Parse reads and parses a verse file.
func Parse(path string) (*File, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrVerseNotFound, path)
		}
		return nil, err
	}

	id := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	f := &File{ID: id, Path: path}

	text := string(content)
	if !strings.HasPrefix(text, "---") {
		f.Body = text
		return f, nil
	}
	parts := strings.SplitN(text, "---", 3)
	if len(parts) < 3 {
		f.Body = text
		return f, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(parts[1]), &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBadFrontmatter, path, err)
	}
	if len(doc.Content) > 0 {
		f.doc = &doc
	}
	f.Body = parts[2]
	return f, nil
}

// mapping returns the top-level frontmatter mapping node, creating it if the
// file has no frontmatter yet.
func (f *File) mapping() *yaml.Node {
	if f.doc == nil {
		f.doc = &yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}
	return f.doc.Content[0]
}

// lookup finds the value node for a top-level frontmatter key.
func (f *File) lookup(key string) *yaml.Node {
	if f.doc == nil {
		return nil
	}
	m := f.doc.Content[0]
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return m.Content[i+1]
		}
	}
	return nil
}

// Has reports whether a top-level frontmatter key is present and non-empty.
func (f *File) Has(key string) bool {
	node := f.lookup(key)
	if node == nil || node.Tag == "!!null" {
		return false
	}
	if node.Kind == yaml.SequenceNode || node.Kind == yaml.MappingNode {
		return len(node.Content) > 0
	}
	return node.Value != ""
}

// Get decodes a top-level frontmatter key into out. A missing key leaves out
// unchanged and returns false.
func (f *File) Get(key string, out interface{}) (bool, error) {
	node := f.lookup(key)
	if node == nil || node.Tag == "!!null" {
		return false, nil
	}
	if err := node.Decode(out); err != nil {
		return false, fmt.Errorf("%w: field %s: %v", ErrBadFrontmatter, key, err)
	}
	return true, nil
}

// GetString returns a top-level scalar field, or "" when absent. Bilingual
// mapping fields yield their "en" value.
func (f *File) GetString(key string) string {
	node := f.lookup(key)
	if node == nil {
		return ""
	}
	if node.Kind == yaml.MappingNode {
		for i := 0; i+1 < len(node.Content); i += 2 {
			if node.Content[i].Value == "en" {
				return node.Content[i+1].Value
			}
		}
		return ""
	}
	return node.Value
}

// Set encodes v under a top-level frontmatter key, replacing any existing
// value. Other keys keep their positions; new keys append at the end.
func (f *File) Set(key string, v interface{}) error {
	var value yaml.Node
	if err := value.Encode(v); err != nil {
		return fmt.Errorf("encode field %s: %w", key, err)
	}

	m := f.mapping()
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = &value
			return nil
		}
	}
	m.Content = append(m.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&value,
	)
	return nil
}

// Write serializes the file back to disk atomically, so a crash mid-write
// never leaves a partially written verse record.
func (f *File) Write() error {
	var b strings.Builder
	b.WriteString("---\n")
	if f.doc != nil {
		enc := yaml.NewEncoder(&b)
		enc.SetIndent(2)
		if err := enc.Encode(f.doc); err != nil {
			return fmt.Errorf("marshal frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("marshal frontmatter: %w", err)
		}
	}
	b.WriteString("---")
	b.WriteString(f.Body)

	return fileutil.WriteFileAtomic(f.Path, []byte(b.String()))
}

// List returns the paths of all verse files in a collection, sorted by name.
func List(projectDir, collection string) ([]string, error) {
	dir := filepath.Join(projectDir, "_verses", collection)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("collection directory not found: %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Path returns the expected path of one verse file.
func Path(projectDir, collection, verseID string) string {
	return filepath.Join(projectDir, "_verses", collection, verseID+".md")
}
