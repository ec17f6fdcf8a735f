package episode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/chunker"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/llm"
)

var (
	ErrExtractionFailed = errors.New("episode extraction failed")
)

// Extractor pulls structured episode records out of chunked source text by
// delegating to a generation collaborator. It owns schema validation and id
// collision resolution; embedding happens separately so extraction failures
// never waste embedding calls.
type Extractor struct {
	llm llm.LLM

	// seen tracks assigned ids across the whole source.
	seen map[string]bool
}

// NewExtractor creates an extractor backed by the given LLM.
func NewExtractor(generator llm.LLM) *Extractor {
	return &Extractor{
		llm:  generator,
		seen: make(map[string]bool),
	}
}

// Extract returns zero or more validated episodes from one segment.
// Malformed records are skipped, not fatal: their count comes back in
// skipped so the caller can report them. A failed LLM call is an error.
func (x *Extractor) Extract(ctx context.Context, segment chunker.Segment, sourceKey string) (episodes []Episode, skipped int, err error) {
	prompt := buildExtractionPrompt(segment.Text, sourceKey)

	raw, err := x.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: segment %d: %w", ErrExtractionFailed, segment.Index, err)
	}

	records, err := parseEpisodeList(raw)
	if err != nil {
		// The whole response was unparseable: skip the segment, do not
		// fail the source.
		return nil, 1, nil
	}

	for _, rec := range records {
		ep := rec
		if err := ep.Validate(); err != nil {
			skipped++
			continue
		}
		ep.ID = UniqueID(ep.ID, x.seen)
		if ep.Source.Text == "" {
			ep.Source.Text = sourceKey
		}
		episodes = append(episodes, ep)
	}

	return episodes, skipped, nil
}

// parseEpisodeList decodes the LLM response as a YAML list of episode
// records, tolerating accidental markdown fences.
func parseEpisodeList(raw string) ([]Episode, error) {
	raw = StripFences(raw)
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var records []Episode
	if err := yaml.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExtractionFailed, err)
	}
	return records, nil
}

// StripFences removes a leading/trailing markdown code fence from an LLM
// response.
func StripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		if idx := strings.Index(raw, "\n"); idx >= 0 {
			raw = raw[idx+1:]
		} else {
			raw = ""
		}
	}
	if strings.HasSuffix(raw, "```") {
		raw = raw[:len(raw)-3]
	}
	return strings.TrimSpace(raw)
}
