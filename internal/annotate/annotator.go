package annotate

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/episode"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/llm"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/retrieval"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/verse"
)

// ContextKey is the frontmatter field owned by this pipeline.
const ContextKey = "puranic_context"

var (
	ErrBadResponse      = errors.New("could not parse generated context entries")
	ErrNothingValidated = errors.New("validation removed every generated entry")
)

// Outcome classifies what happened to one verse.
type Outcome string

const (
	OutcomeAdded       Outcome = "added"
	OutcomeRegenerated Outcome = "regenerated"
	OutcomeSkipped     Outcome = "skipped"
	OutcomeEmpty       Outcome = "empty"
	OutcomeFailed      Outcome = "failed"
)

// VerseResult reports the outcome for one verse.
type VerseResult struct {
	VerseID string
	Outcome Outcome
	Entries int
	Mode    GroundingMode
	Err     error
}

// Summary aggregates a run over many verses. A run succeeds iff Failed == 0.
type Summary struct {
	Added       int
	Regenerated int
	Skipped     int
	Empty       int
	Failed      int
	Results     []VerseResult
}

// Record folds one verse result into the summary.
func (s *Summary) Record(r VerseResult) {
	s.Results = append(s.Results, r)
	switch r.Outcome {
	case OutcomeAdded:
		s.Added++
	case OutcomeRegenerated:
		s.Regenerated++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeEmpty:
		s.Empty++
	case OutcomeFailed:
		s.Failed++
	}
}

// Annotator runs retrieval-augmented context generation for verses, one at a
// time. Per-verse failures are recorded and the run continues; only the
// final summary decides the exit status.
type Annotator struct {
	Engine      *retrieval.Engine
	Generator   llm.LLM
	Subject     string
	SubjectType string
	TopK        int
	Regenerate  bool
}

// Run annotates every verse file in paths sequentially.
func (a *Annotator) Run(ctx context.Context, paths []string) *Summary {
	summary := &Summary{}
	for _, path := range paths {
		summary.Record(a.AnnotateVerse(ctx, path))
	}
	return summary
}

// AnnotateVerse processes a single verse file end to end: retrieve, filter,
// generate, validate, merge, write.
func (a *Annotator) AnnotateVerse(ctx context.Context, path string) VerseResult {
	f, err := verse.Parse(path)
	if err != nil {
		return VerseResult{VerseID: verseIDFromPath(path), Outcome: OutcomeFailed, Err: err}
	}
	result := VerseResult{VerseID: f.ID}

	hadContext := f.Has(ContextKey)
	if hadContext && !a.Regenerate {
		result.Outcome = OutcomeSkipped
		return result
	}

	var existing []ContextEntry
	if hadContext {
		if _, err := f.Get(ContextKey, &existing); err != nil {
			result.Outcome = OutcomeFailed
			result.Err = err
			return result
		}
	}

	retrieved, err := a.Engine.Retrieve(ctx, queryText(f), a.TopK)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	grounding := GroundingFor(retrieved, a.Subject)
	result.Mode = grounding.Mode

	prompt := BuildContextPrompt(f, grounding, a.Subject, a.SubjectType)
	raw, err := a.Generator.Generate(ctx, prompt)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	candidates, err := parseEntryList(raw)
	if err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	if len(candidates) == 0 {
		// The verse genuinely has no Puranic content — a success with
		// nothing to write, distinct from a failure.
		result.Outcome = OutcomeEmpty
		return result
	}

	validated := Validate(candidates, a.Subject, grounding, existing, a.Regenerate)
	if len(validated) == 0 {
		result.Outcome = OutcomeFailed
		result.Err = fmt.Errorf("%w (%d candidates)", ErrNothingValidated, len(candidates))
		return result
	}

	merged := Merge(existing, validated, a.Regenerate)
	if err := f.Set(ContextKey, merged); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}
	if err := f.Write(); err != nil {
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	result.Entries = len(validated)
	if hadContext {
		result.Outcome = OutcomeRegenerated
	} else {
		result.Outcome = OutcomeAdded
	}
	return result
}

// queryText builds the retrieval query from the verse's devanagari,
// transliteration, and English meaning fields.
func queryText(f *verse.File) string {
	var parts []string
	for _, field := range []string{"devanagari", "transliteration", "translation", "interpretive_meaning", "title_en"} {
		if v := f.GetString(field); v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return f.ID
	}
	return strings.Join(parts, "\n")
}

// parseEntryList decodes the LLM response as a YAML list of context entries,
// tolerating accidental markdown fences.
func parseEntryList(raw string) ([]ContextEntry, error) {
	raw = episode.StripFences(raw)
	if strings.TrimSpace(raw) == "" || strings.TrimSpace(raw) == "[]" {
		return nil, nil
	}
	var entries []ContextEntry
	if err := yaml.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return entries, nil
}

func verseIDFromPath(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return strings.TrimSuffix(base, ".md")
}
