package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/embedding"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/index"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/llm"
)

var (
	indexFile      string
	indexSourceKey string
	indexProvider  string
	indexModel     string
	indexChunkSize int
)

var indexSourcesCmd = &cobra.Command{
	Use:   "index-sources",
	Short: "Index a source text into searchable episodes",
	Long: `Index a source text into discrete episodes with vector embeddings.

The text is chunked on paragraph and sentence boundaries, each chunk is
passed to the generation model for structured episode extraction, and the
validated episodes are embedded and persisted under _data/episodes/ along
with the source registry. Re-indexing a source overwrites its episodes
entirely.

Required environment variables (by provider):
  OPENAI_API_KEY       - for --provider openai (default)
  GEMINI_API_KEY       - for --provider gemini
  OPENROUTER_API_KEY   - for --provider openrouter

Examples:
  versesdk index-sources --file texts/shiv-puran.txt
  versesdk index-sources --file texts/ramayan.txt --provider gemini --chunk-size 6000`,
	RunE: runIndexSources,
}

func init() {
	rootCmd.AddCommand(indexSourcesCmd)
	indexSourcesCmd.Flags().StringVar(&indexFile, "file", "", "Path to the source text file (required)")
	indexSourcesCmd.Flags().StringVar(&indexSourceKey, "source-key", "", "Source key (default: derived from the file name)")
	indexSourcesCmd.Flags().StringVar(&indexProvider, "provider", embedding.ProviderOpenAI, "Embedding/generation provider: openai, gemini, openrouter")
	indexSourcesCmd.Flags().StringVar(&indexModel, "model", "", "Embedding model override")
	indexSourcesCmd.Flags().IntVar(&indexChunkSize, "chunk-size", 0, "Segment budget in characters (default 8000)")
	_ = indexSourcesCmd.MarkFlagRequired("file")
}

// requireAPIKey is the fatal up-front credential check shared by commands
// that talk to the provider.
func requireAPIKey(provider string) error {
	envVar := embedding.APIKeyEnv(provider)
	if envVar == "" {
		return fmt.Errorf("unknown provider %q", provider)
	}
	if os.Getenv(envVar) == "" {
		return fmt.Errorf("%s environment variable is required", envVar)
	}
	return nil
}

func runIndexSources(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if err := requireAPIKey(indexProvider); err != nil {
		return err
	}
	if _, err := os.Stat(indexFile); err != nil {
		return fmt.Errorf("source file not found: %s", indexFile)
	}

	embedder, err := embedding.New(embedding.Config{
		Provider: indexProvider,
		Model:    indexModel,
	})
	if err != nil {
		return fmt.Errorf("create embedder: %w", err)
	}

	generator, err := llm.New(llm.DefaultConfig(indexProvider))
	if err != nil {
		return fmt.Errorf("create generation model: %w", err)
	}

	store := index.NewStore(projectDir)
	indexer := index.NewIndexer(store, embedder, generator, indexChunkSize)

	key := indexSourceKey
	if key == "" {
		key = index.SourceKeyFromPath(indexFile)
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("INDEXING SOURCE"))
	fmt.Printf("Source  : %s\n", indexFile)
	fmt.Printf("Key     : %s\n", key)
	fmt.Printf("Provider: %s (%s)\n", embedder.Provider(), embedder.Model())
	fmt.Println()

	fmt.Println(mutedStyle.Render("→ Chunking, extracting, and embedding episodes..."))
	summary, err := indexer.IndexSource(ctx, indexFile, key)
	if err != nil {
		if summary != nil && summary.Segments > 0 {
			fmt.Println(errorStyle.Render(fmt.Sprintf("✗ Indexing aborted after %d segments; nothing was registered", summary.Segments)))
		}
		return err
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d episodes from %d segments", summary.Episodes, summary.Segments)))
	if summary.Skipped > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("⚠ Skipped %d malformed records", summary.Skipped)))
	}
	fmt.Println()

	return nil
}
