package annotate

import (
	"strings"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/retrieval"
)

// GroundingMode tags how the grounding set for a verse came about, so
// downstream code never has to guess from an empty or suspiciously full
// slice.
type GroundingMode int

const (
	// GroundingNone means retrieval found no compatible episodes at all.
	// Generation proceeds without grounding material.
	GroundingNone GroundingMode = iota

	// GroundingFiltered means the subject filter retained a subset of the
	// retrieved episodes.
	GroundingFiltered

	// GroundingFallback means the subject filter matched nothing, so the
	// full retrieved set passed through unchanged. The validator remains
	// the strictness backstop in this mode.
	GroundingFallback
)

// Grounding is the episode set a generation call may draw facts from,
// tagged with how it was produced.
type Grounding struct {
	Mode    GroundingMode
	Matches []retrieval.Match
}

// Episodes returns the grounding episodes in rank order.
func (g Grounding) Episodes() []episode.Episode {
	eps := make([]episode.Episode, len(g.Matches))
	for i, m := range g.Matches {
		eps[i] = m.Episode
	}
	return eps
}

// SourceNames returns the distinct scripture names cited by the grounding
// episodes, in first-seen order.
func (g Grounding) SourceNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range g.Matches {
		name := m.Episode.Source.Text
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// episodeMentions reports whether an episode names the subject in its
// keywords, id, or summary. Lexical, case-insensitive substring matching —
// not semantic.
func episodeMentions(ep episode.Episode, subject string) bool {
	needle := strings.ToLower(subject)
	if strings.Contains(strings.ToLower(ep.ID), needle) {
		return true
	}
	for _, kw := range ep.Keywords {
		if strings.Contains(strings.ToLower(kw), needle) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(ep.Summary.EN), needle) ||
		strings.Contains(strings.ToLower(ep.Summary.HI), needle)
}

// GroundingFor narrows retrieved matches to those naming the subject. If the
// filter removes every episode, the full retrieved set passes through
// unchanged — grounding degrades gracefully rather than vanishing, and the
// result is tagged GroundingFallback so callers can tell.
func GroundingFor(result *retrieval.Result, subject string) Grounding {
	if result == nil || !result.Grounded || len(result.Matches) == 0 {
		return Grounding{Mode: GroundingNone}
	}
	if subject == "" {
		return Grounding{Mode: GroundingFiltered, Matches: result.Matches}
	}

	var filtered []retrieval.Match
	for _, m := range result.Matches {
		if episodeMentions(m.Episode, subject) {
			filtered = append(filtered, m)
		}
	}
	if len(filtered) == 0 {
		return Grounding{Mode: GroundingFallback, Matches: result.Matches}
	}
	return Grounding{Mode: GroundingFiltered, Matches: filtered}
}
