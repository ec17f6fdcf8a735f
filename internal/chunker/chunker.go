// Package chunker splits raw source text into segments bounded by a
// character budget, preferring paragraph and sentence boundaries.
package chunker

import "strings"

// DefaultMaxChars is the segment budget used when none is configured.
const DefaultMaxChars = 8000

// Segment is one contiguous slice of the source text.
type Segment struct {
	// Index is the zero-based position of the segment in the source.
	Index int

	// Text is the raw segment content, separators included, so that
	// concatenating all segments reconstructs the original text exactly.
	Text string
}

// Chunk splits text into segments of at most maxChars characters each,
// breaking on paragraph boundaries first and sentence boundaries inside
// oversized paragraphs. A single sentence longer than maxChars is emitted
// as an oversized segment rather than truncated. The result is
// deterministic for a given input and budget.
func Chunk(text string, maxChars int) []Segment {
	if maxChars <= 0 {
		maxChars = DefaultMaxChars
	}
	if text == "" {
		return nil
	}

	var units []string
	for _, para := range splitParagraphs(text) {
		if len(para) <= maxChars {
			units = append(units, para)
			continue
		}
		units = append(units, splitSentences(para)...)
	}

	var segments []Segment
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		segments = append(segments, Segment{Index: len(segments), Text: b.String()})
		b.Reset()
	}

	for _, unit := range units {
		if b.Len() > 0 && b.Len()+len(unit) > maxChars {
			flush()
		}
		// An unbreakable unit over budget goes out as its own segment.
		if len(unit) > maxChars {
			flush()
			segments = append(segments, Segment{Index: len(segments), Text: unit})
			continue
		}
		b.WriteString(unit)
	}
	flush()

	return segments
}

// splitParagraphs cuts text after each blank-line run. The pieces
// concatenate back to the original text.
func splitParagraphs(text string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(text); {
		if text[i] == '\n' && i+1 < len(text) && text[i+1] == '\n' {
			end := i + 2
			for end < len(text) && text[end] == '\n' {
				end++
			}
			parts = append(parts, text[start:end])
			start = end
			i = end
			continue
		}
		i++
	}
	if start < len(text) {
		parts = append(parts, text[start:])
	}
	return parts
}

// sentence terminators, including the danda marks used in Devanagari texts
func isTerminator(r rune) bool {
	switch r {
	case '.', '!', '?', '।', '॥': // । ॥
		return true
	}
	return false
}

// splitSentences cuts text after each terminator run plus trailing
// whitespace. The pieces concatenate back to the original text.
func splitSentences(text string) []string {
	var parts []string
	runes := []rune(text)
	start := 0
	i := 0
	for i < len(runes) {
		if !isTerminator(runes[i]) {
			i++
			continue
		}
		for i < len(runes) && isTerminator(runes[i]) {
			i++
		}
		for i < len(runes) && (runes[i] == ' ' || runes[i] == '\t' || runes[i] == '\n') {
			i++
		}
		parts = append(parts, string(runes[start:i]))
		start = i
	}
	if start < len(runes) {
		parts = append(parts, string(runes[start:]))
	}
	return parts
}
