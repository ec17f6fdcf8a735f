package episode

import (
	"fmt"
	"strings"
)

// buildExtractionPrompt assembles the structured-extraction prompt for one
// source segment. The schema mirrors the Episode type exactly so the
// response can be decoded directly.
func buildExtractionPrompt(segmentText, sourceKey string) string {
	var b strings.Builder

	b.WriteString("You are an expert in Hindu scriptures, Puranas, and devotional literature (bhakti). ")
	b.WriteString("You extract discrete, citable episodes from scripture passages: stories, characters, ")
	b.WriteString("concepts, etymologies, practices, and cross references.\n\n")

	b.WriteString("Each episode must be a YAML object with these fields:\n")
	b.WriteString("  id: unique-slug (kebab-case)\n")
	b.WriteString("  type: story | concept | character | etymology | practice | cross_reference\n")
	b.WriteString("  priority: high | medium | low\n")
	b.WriteString("  title:\n")
	b.WriteString("    en: \"English title\"\n")
	b.WriteString("    hi: \"Hindi title in Devanagari\"\n")
	b.WriteString("  summary:\n")
	b.WriteString("    en: \"2-4 sentence summary\"\n")
	b.WriteString("    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  significance:\n")
	b.WriteString("    en: \"2-4 sentences on spiritual meaning\"\n")
	b.WriteString("    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  application:\n")
	b.WriteString("    en: \"2-4 sentences on practical use\"\n")
	b.WriteString("    hi: \"Same in Hindi Devanagari\"\n")
	b.WriteString("  keywords: [list, of, subject, keywords]\n")
	b.WriteString("  source_reference:\n")
	b.WriteString(fmt.Sprintf("    text: \"%s\"\n", sourceKey))
	b.WriteString("    section: \"Book/chapter/kanda where this passage sits\"\n\n")

	b.WriteString("Rules:\n")
	b.WriteString("- Extract only episodes actually present in the passage below\n")
	b.WriteString("- Return [] if the passage contains no discrete episodes\n")
	b.WriteString("- Include every character and deity named in the episode in keywords\n")
	b.WriteString("- All Hindi text must be in Devanagari script\n")
	b.WriteString("- Return ONLY a valid YAML list - no markdown fences, no explanation\n\n")

	b.WriteString("# Passage\n\n")
	b.WriteString(segmentText)

	return b.String()
}
