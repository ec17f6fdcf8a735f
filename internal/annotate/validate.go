package annotate

import (
	"strings"
	"unicode"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
)

// vagueSections are placeholder citations the LLM falls back to when it has
// nothing concrete. Entries citing only these are ungrounded and dropped.
var vagueSections = map[string]bool{
	"":                       true,
	"unknown":                true,
	"various":                true,
	"not directly mentioned": true,
	"n/a":                    true,
	"none":                   true,
	"general":                true,
}

// vagueSection reports whether a section locator is too vague to count as a
// citation. Bare numbers ("71") carry no locating information either.
func vagueSection(section string) bool {
	section = strings.TrimSpace(strings.ToLower(section))
	if vagueSections[section] {
		return true
	}
	bareNumber := section != ""
	for _, r := range section {
		if !unicode.IsDigit(r) {
			bareNumber = false
			break
		}
	}
	return bareNumber
}

// properlyCited reports whether an entry carries at least one concrete
// citation. When indexedSources is non-empty, the cited scripture must also
// be one of them: the generation step may only draw from indexed material,
// so a citation outside it is fabricated.
func properlyCited(entry ContextEntry, indexedSources []string) bool {
	for _, st := range entry.SourceTexts {
		if vagueSection(st.Section) {
			continue
		}
		if len(indexedSources) == 0 {
			return true
		}
		for _, name := range indexedSources {
			if strings.EqualFold(strings.TrimSpace(st.Text), strings.TrimSpace(name)) {
				return true
			}
		}
	}
	return false
}

// entryNames reports whether the entry's own text names the subject — the
// "direct participant, not incidental" rule, enforced lexically.
func entryNames(entry ContextEntry, subject string) bool {
	needle := strings.ToLower(subject)
	for _, field := range []string{
		entry.ID,
		entry.Title.EN,
		entry.StorySummary.EN,
		entry.TheologicalSignificance.EN,
	} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// subjectCorroborated checks the subject against the grounding set: at least
// one grounding episode must itself mention the subject. String and keyword
// corroboration only — this is a strict belt on top of the prompt-based
// constraint, not semantic verification.
func subjectCorroborated(subject string, grounding []episode.Episode) bool {
	if len(grounding) == 0 {
		// No-grounding mode: only the prompt constraint applies.
		return true
	}
	for _, ep := range grounding {
		if episodeMentions(ep, subject) {
			return true
		}
	}
	return false
}

// Validate drops candidate entries that are ungrounded or off-subject:
// entries without a concrete citation into the indexed sources, entries that
// never name the subject, entries uncorroborated by the grounding set, and
// entries whose id collides with the existing block (unless regenerating,
// which discards the existing block anyway).
func Validate(candidates []ContextEntry, subject string, grounding Grounding, existing []ContextEntry, regenerate bool) []ContextEntry {
	existingIDs := make(map[string]bool, len(existing))
	if !regenerate {
		for _, e := range existing {
			existingIDs[e.ID] = true
		}
	}

	groundingEpisodes := grounding.Episodes()
	indexedSources := grounding.SourceNames()
	subjectOK := subject == "" || subjectCorroborated(subject, groundingEpisodes)

	var valid []ContextEntry
	for _, entry := range candidates {
		if strings.TrimSpace(entry.ID) == "" {
			continue
		}
		if existingIDs[entry.ID] {
			continue
		}
		if !properlyCited(entry, indexedSources) {
			continue
		}
		if subject != "" && (!subjectOK || !entryNames(entry, subject)) {
			continue
		}
		valid = append(valid, entry)
	}
	return valid
}
