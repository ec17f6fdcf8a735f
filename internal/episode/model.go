// Package episode defines the discrete units of source knowledge produced by
// indexing and consumed by retrieval, plus the LLM-backed extractor that
// pulls them out of chunked source text.
package episode

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	ErrInvalidEpisode = errors.New("invalid episode record")
)

// Episode types.
const (
	TypeStory          = "story"
	TypeConcept        = "concept"
	TypeCharacter      = "character"
	TypeEtymology      = "etymology"
	TypePractice       = "practice"
	TypeCrossReference = "cross_reference"
)

// Episode priorities.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var validTypes = map[string]bool{
	TypeStory:          true,
	TypeConcept:        true,
	TypeCharacter:      true,
	TypeEtymology:      true,
	TypePractice:       true,
	TypeCrossReference: true,
}

var validPriorities = map[string]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

// Localized is a bilingual string pair: English plus Hindi in Devanagari.
type Localized struct {
	EN string `json:"en" yaml:"en"`
	HI string `json:"hi,omitempty" yaml:"hi,omitempty"`
}

// SourceReference locates an episode inside its source text.
type SourceReference struct {
	Text    string `json:"text" yaml:"text"`
	Section string `json:"section" yaml:"section"`
}

// Episode is a discrete, citable unit of source knowledge: a story,
// character, concept, etymology, practice, or cross reference. Embedding
// vectors live in the parallel embeddings file, keyed by ID, so the index
// file stays human-reviewable.
type Episode struct {
	ID           string          `json:"id" yaml:"id"`
	Type         string          `json:"type" yaml:"type"`
	Priority     string          `json:"priority" yaml:"priority"`
	Title        Localized       `json:"title" yaml:"title"`
	Summary      Localized       `json:"summary" yaml:"summary"`
	Significance Localized       `json:"significance" yaml:"significance"`
	Application  Localized       `json:"application" yaml:"application"`
	Keywords     []string        `json:"keywords" yaml:"keywords"`
	Source       SourceReference `json:"source_reference" yaml:"source_reference"`
}

// Validate checks the schema constraints on an extracted record.
func (e *Episode) Validate() error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidEpisode)
	}
	if !validTypes[e.Type] {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidEpisode, e.Type)
	}
	if !validPriorities[e.Priority] {
		return fmt.Errorf("%w: unknown priority %q", ErrInvalidEpisode, e.Priority)
	}
	if strings.TrimSpace(e.Title.EN) == "" {
		return fmt.Errorf("%w: missing title", ErrInvalidEpisode)
	}
	if strings.TrimSpace(e.Summary.EN) == "" {
		return fmt.Errorf("%w: missing summary", ErrInvalidEpisode)
	}
	return nil
}

// EmbeddingText builds the text that is embedded for this episode: the
// English title, summary, significance, and keywords concatenated.
func (e *Episode) EmbeddingText() string {
	var b strings.Builder
	b.WriteString(e.Title.EN)
	b.WriteString("\n")
	b.WriteString(e.Summary.EN)
	if e.Significance.EN != "" {
		b.WriteString("\n")
		b.WriteString(e.Significance.EN)
	}
	if len(e.Keywords) > 0 {
		b.WriteString("\n")
		b.WriteString(strings.Join(e.Keywords, ", "))
	}
	return b.String()
}

var slugCleaner = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify normalizes an id to a kebab-case slug.
func Slugify(id string) string {
	slug := slugCleaner.ReplaceAllString(strings.ToLower(strings.TrimSpace(id)), "-")
	return strings.Trim(slug, "-")
}

// UniqueID resolves id collisions within a source by appending a numeric
// disambiguator: "hanuman-birth", "hanuman-birth-2", "hanuman-birth-3", ...
// The returned id is recorded in seen.
func UniqueID(id string, seen map[string]bool) string {
	id = Slugify(id)
	if !seen[id] {
		seen[id] = true
		return id
	}
	for n := 2; ; n++ {
		candidate := fmt.Sprintf("%s-%d", id, n)
		if !seen[candidate] {
			seen[candidate] = true
			return candidate
		}
	}
}
