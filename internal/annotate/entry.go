// Package annotate turns retrieved episodes into validated puranic_context
// entries and merges them into verse frontmatter. It covers the online half
// of the pipeline: subject filtering, grounded prompt construction,
// validation of the generated entries, and the idempotent merge.
package annotate

import (
	"sort"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
)

// ContextEntry is one annotation entry in a verse's puranic_context block.
type ContextEntry struct {
	ID                      string                    `yaml:"id"`
	Type                    string                    `yaml:"type"`
	Priority                string                    `yaml:"priority"`
	Title                   episode.Localized         `yaml:"title"`
	Icon                    string                    `yaml:"icon,omitempty"`
	StorySummary            episode.Localized         `yaml:"story_summary"`
	TheologicalSignificance episode.Localized         `yaml:"theological_significance"`
	PracticalApplication    episode.Localized         `yaml:"practical_application"`
	SourceTexts             []episode.SourceReference `yaml:"source_texts"`
	RelatedVerses           []string                  `yaml:"related_verses"`
}

var priorityRank = map[string]int{
	episode.PriorityHigh:   0,
	episode.PriorityMedium: 1,
	episode.PriorityLow:    2,
}

// sortByPriority orders entries high to low priority, keeping generation
// order (which follows retrieval rank) within each priority.
func sortByPriority(entries []ContextEntry) []ContextEntry {
	sorted := make([]ContextEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, ok := priorityRank[sorted[i].Priority]
		if !ok {
			ri = len(priorityRank)
		}
		rj, ok := priorityRank[sorted[j].Priority]
		if !ok {
			rj = len(priorityRank)
		}
		return ri < rj
	})
	return sorted
}

// Merge combines a verse's existing annotation block with freshly validated
// entries.
//
// Default mode: existing entries stay untouched and in order; incoming
// entries whose id already exists are dropped; the remainder appends in
// priority order. Applying the same merge twice is a no-op.
//
// Regenerate mode: the block is replaced wholesale by the incoming set.
func Merge(existing, incoming []ContextEntry, regenerate bool) []ContextEntry {
	if regenerate {
		return sortByPriority(incoming)
	}

	seen := make(map[string]bool, len(existing))
	for _, e := range existing {
		seen[e.ID] = true
	}

	var fresh []ContextEntry
	for _, e := range incoming {
		if seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		fresh = append(fresh, e)
	}

	merged := make([]ContextEntry, 0, len(existing)+len(fresh))
	merged = append(merged, existing...)
	merged = append(merged, sortByPriority(fresh)...)
	return merged
}
