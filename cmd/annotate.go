package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/annotate"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/embedding"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/index"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/llm"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/retrieval"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/verse"
)

var (
	annotateCollection  string
	annotateVerse       string
	annotateAll         bool
	annotateRegenerate  bool
	annotateSubject     string
	annotateSubjectType string
	annotateProvider    string
	annotateTopK        int
)

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Generate grounded Puranic context for verses",
	Long: `Annotate verses with Puranic context entries grounded in indexed episodes.

For each verse the most relevant indexed episodes are retrieved by vector
similarity, narrowed to the collection's subject, and passed to the
generation model as the only permissible source material. Generated entries
are validated for citations and subject relevance, then merged into the
verse frontmatter. Verses that already have context are skipped unless
--regenerate is given, which replaces the whole block.

Examples:
  versesdk annotate --collection hanuman-chalisa --verse chaupai-15
  versesdk annotate --collection bajrang-baan --all
  versesdk annotate --collection hanuman-chalisa --all --regenerate --subject Hanuman`,
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
	annotateCmd.Flags().StringVar(&annotateCollection, "collection", "", "Collection key (required)")
	annotateCmd.Flags().StringVar(&annotateVerse, "verse", "", "Verse ID to process (e.g., chaupai-15)")
	annotateCmd.Flags().BoolVar(&annotateAll, "all", false, "Process all verses in the collection")
	annotateCmd.Flags().BoolVar(&annotateRegenerate, "regenerate", false, "Replace existing puranic_context entries")
	annotateCmd.Flags().StringVar(&annotateSubject, "subject", "", "Subject to filter and validate against (default: collection config)")
	annotateCmd.Flags().StringVar(&annotateSubjectType, "subject-type", "", "Subject type label (e.g., deity)")
	annotateCmd.Flags().StringVar(&annotateProvider, "provider", embedding.ProviderOpenAI, "Embedding/generation provider: openai, gemini, openrouter")
	annotateCmd.Flags().IntVar(&annotateTopK, "top-k", retrieval.DefaultTopK, "Number of episodes to retrieve per verse")
	_ = annotateCmd.MarkFlagRequired("collection")
	annotateCmd.MarkFlagsOneRequired("verse", "all")
	annotateCmd.MarkFlagsMutuallyExclusive("verse", "all")
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := requireAPIKey(annotateProvider); err != nil {
		return err
	}

	// Resolve the verse files up front: a missing collection or verse is a
	// configuration error, not a per-verse failure.
	var paths []string
	if annotateAll {
		var err error
		paths, err = verse.List(projectDir, annotateCollection)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no verse files found for collection %s", annotateCollection)
		}
	} else {
		path := verse.Path(projectDir, annotateCollection, annotateVerse)
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("verse file not found: %s", path)
		}
		paths = []string{path}
	}

	subject, subjectType := annotateSubject, annotateSubjectType
	if subject == "" {
		var err error
		subject, subjectType, err = verse.CollectionSubject(annotateCollection, projectDir)
		if err != nil {
			return err
		}
	}

	embedder, err := embedding.New(embedding.Config{Provider: annotateProvider})
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}
	generator, err := llm.New(llm.DefaultConfig(annotateProvider))
	if err != nil {
		return fmt.Errorf("create generation model: %w", err)
	}

	store := index.NewStore(projectDir)
	annotator := &annotate.Annotator{
		Engine:      retrieval.NewEngine(store, embedder),
		Generator:   generator,
		Subject:     subject,
		SubjectType: subjectType,
		TopK:        annotateTopK,
		Regenerate:  annotateRegenerate,
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("PURANIC CONTEXT GENERATION"))
	fmt.Printf("Collection : %s\n", annotateCollection)
	if annotateAll {
		fmt.Printf("Verses     : all (%d)\n", len(paths))
	} else {
		fmt.Printf("Verses     : %s\n", annotateVerse)
	}
	if subject != "" {
		fmt.Printf("Subject    : %s\n", subject)
	} else {
		fmt.Println(warnStyle.Render("Subject    : none configured (subject validation disabled)"))
	}
	if annotateRegenerate {
		fmt.Println("Regenerate : yes")
	} else {
		fmt.Println("Regenerate : no (skip existing)")
	}
	fmt.Println()

	summary := &annotate.Summary{}
	for _, path := range paths {
		result := annotator.AnnotateVerse(ctx, path)
		printVerseResult(result)
		summary.Record(result)
	}

	printAnnotateSummary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d verses failed", summary.Failed, len(paths))
	}
	return nil
}

func printVerseResult(r annotate.VerseResult) {
	switch r.Outcome {
	case annotate.OutcomeAdded:
		fmt.Println(successStyle.Render(fmt.Sprintf("  ✓ %s: %d context entries added%s", r.VerseID, r.Entries, groundingNote(r.Mode))))
	case annotate.OutcomeRegenerated:
		fmt.Println(successStyle.Render(fmt.Sprintf("  ✓ %s: %d context entries regenerated%s", r.VerseID, r.Entries, groundingNote(r.Mode))))
	case annotate.OutcomeSkipped:
		fmt.Printf("  ⊘ %s: already has context, skipping (use --regenerate to overwrite)\n", r.VerseID)
	case annotate.OutcomeEmpty:
		fmt.Printf("  ○ %s: no Puranic content identified\n", r.VerseID)
	case annotate.OutcomeFailed:
		fmt.Println(errorStyle.Render(fmt.Sprintf("  ✗ %s: %v", r.VerseID, r.Err)))
	}
}

func groundingNote(mode annotate.GroundingMode) string {
	switch mode {
	case annotate.GroundingNone:
		return " (no grounding available)"
	case annotate.GroundingFallback:
		return " (subject filter fell back to full set)"
	}
	return ""
}

func printAnnotateSummary(s *annotate.Summary) {
	fmt.Println()
	fmt.Println(headerStyle.Render("SUMMARY"))
	if s.Added > 0 {
		fmt.Println(successStyle.Render(fmt.Sprintf("  ✓ Added      : %d", s.Added)))
	}
	if s.Regenerated > 0 {
		fmt.Println(successStyle.Render(fmt.Sprintf("  ✓ Updated    : %d", s.Regenerated)))
	}
	if s.Empty > 0 {
		fmt.Printf("  ○ No content : %d\n", s.Empty)
	}
	if s.Skipped > 0 {
		fmt.Printf("  ⊘ Skipped    : %d\n", s.Skipped)
	}
	if s.Failed > 0 {
		fmt.Println(errorStyle.Render(fmt.Sprintf("  ✗ Failed     : %d", s.Failed)))
	}
	fmt.Println()
}
