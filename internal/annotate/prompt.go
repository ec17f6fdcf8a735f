package annotate

import (
	"fmt"
	"strings"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/verse"
)

// BuildContextPrompt assembles the generation request for one verse. In
// grounded mode the grounding episodes are declared the only permissible
// source material; without grounding the prompt says so explicitly and
// falls back to well-established scripture.
func BuildContextPrompt(f *verse.File, grounding Grounding, subject, subjectType string) string {
	var b strings.Builder

	b.WriteString("You are an expert in Hindu scriptures, Puranas, and devotional literature (bhakti). ")
	b.WriteString("You generate structured Puranic context entries for verses from sacred texts.\n\n")

	b.WriteString("Each context entry must be a YAML object with these fields:\n")
	b.WriteString("  id: unique-slug (kebab-case)\n")
	b.WriteString("  type: story | concept | character | etymology | practice | cross_reference\n")
	b.WriteString("  priority: high | medium | low\n")
	b.WriteString("  title:\n    en: \"English title\"\n    hi: \"Hindi title in Devanagari\"\n")
	b.WriteString("  icon: single emoji\n")
	b.WriteString("  story_summary:\n    en: \"2-4 sentence summary\"\n    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  theological_significance:\n    en: \"2-4 sentences on spiritual meaning\"\n    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  practical_application:\n    en: \"2-4 sentences on practical use\"\n    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  source_texts:\n    - text: \"Scripture name\"\n      section: \"Book/chapter/kanda\"\n")
	b.WriteString("  related_verses: []\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Generate 1-3 entries per verse (only the most relevant references)\n")
	b.WriteString("- For short invocations, closing verses, or verses with no meaningful Puranic content, return an empty list []\n")
	b.WriteString("- Prioritise accuracy over quantity\n")
	b.WriteString("- Every entry must cite a concrete section, never \"unknown\" or \"various\"\n")
	b.WriteString("- All Hindi text must be in Devanagari script\n")
	b.WriteString("- Return ONLY valid YAML - no markdown fences, no explanation\n")
	if subject != "" {
		label := subjectType
		if label == "" {
			label = "subject"
		}
		b.WriteString(fmt.Sprintf("- Every entry must feature %s (%s) as a direct participant in the story or concept, not an incidental mention\n", subject, label))
	}
	b.WriteString("\n")

	writeVerseBlock(&b, f)
	writeGroundingBlock(&b, grounding)

	b.WriteString("Generate Puranic context entries for this verse as a YAML list.\n")
	b.WriteString("Return [] if the verse has no meaningful Puranic content.")

	return b.String()
}

func writeVerseBlock(b *strings.Builder, f *verse.File) {
	title := f.GetString("title_en")
	if title == "" {
		title = f.ID
	}
	b.WriteString(fmt.Sprintf("Verse: %s\n", title))
	if v := f.GetString("devanagari"); v != "" {
		b.WriteString(fmt.Sprintf("Devanagari: %s\n", v))
	}
	if v := f.GetString("transliteration"); v != "" {
		b.WriteString(fmt.Sprintf("Transliteration: %s\n", v))
	}
	for _, field := range []string{"translation", "interpretive_meaning", "literal_translation"} {
		if v := f.GetString(field); v != "" {
			b.WriteString(fmt.Sprintf("%s: %s\n", field, v))
		}
	}
	if v := f.GetString("story"); v != "" {
		if len(v) > 800 {
			v = v[:800]
		}
		b.WriteString(fmt.Sprintf("\nStory/Context: %s\n", v))
	}
	b.WriteString("\n")
}

func writeGroundingBlock(b *strings.Builder, grounding Grounding) {
	if grounding.Mode == GroundingNone {
		b.WriteString("# Source Material\n\n")
		b.WriteString("No indexed source episodes are available for this verse. ")
		b.WriteString("Draw only on well-established, widely attested scripture, and cite it precisely.\n\n")
		return
	}

	b.WriteString("# Source Episodes\n\n")
	b.WriteString("The episodes below are the ONLY material you may draw factual claims from. ")
	b.WriteString("Do not introduce stories, characters, or citations that are not in them.\n\n")

	for _, m := range grounding.Matches {
		ep := m.Episode
		b.WriteString(fmt.Sprintf("**%s** (%s, relevance: %.2f)\n", ep.ID, ep.Type, m.Score))
		b.WriteString(fmt.Sprintf("Title: %s\n", ep.Title.EN))
		b.WriteString(fmt.Sprintf("Summary: %s\n", ep.Summary.EN))
		if ep.Significance.EN != "" {
			b.WriteString(fmt.Sprintf("Significance: %s\n", ep.Significance.EN))
		}
		if len(ep.Keywords) > 0 {
			b.WriteString(fmt.Sprintf("Keywords: %s\n", strings.Join(ep.Keywords, ", ")))
		}
		b.WriteString(fmt.Sprintf("Source: %s, %s\n\n", ep.Source.Text, ep.Source.Section))
	}
}
