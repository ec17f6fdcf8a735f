package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/annotate"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/index"
	"github.com/sanatan-learnings/sanatan-verse-sdk/internal/verse"
)

var statusCollection string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show annotation coverage and indexed sources",
	Long: `Show how many verses in a collection carry puranic_context, and which
source texts are indexed in the registry.

Examples:
  versesdk status --collection hanuman-chalisa`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVar(&statusCollection, "collection", "", "Collection key (required)")
	_ = statusCmd.MarkFlagRequired("collection")
}

func runStatus(cmd *cobra.Command, args []string) error {
	paths, err := verse.List(projectDir, statusCollection)
	if err != nil {
		return err
	}

	annotated := 0
	unparseable := 0
	for _, path := range paths {
		f, err := verse.Parse(path)
		if err != nil {
			unparseable++
			continue
		}
		if f.Has(annotate.ContextKey) {
			annotated++
		}
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("COLLECTION STATUS"))
	fmt.Printf("Collection : %s\n", statusCollection)
	fmt.Printf("Verses     : %d\n", len(paths))
	if len(paths) > 0 {
		pct := 100 * annotated / len(paths)
		fmt.Printf("Annotated  : %d (%d%%)\n", annotated, pct)
	}
	if unparseable > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Unreadable : %d", unparseable)))
	}

	reg, err := index.NewStore(projectDir).LoadRegistry()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("INDEXED SOURCES"))
	if len(reg.Sources) == 0 {
		fmt.Println(mutedStyle.Render("  (none - run index-sources first; annotation will run ungrounded)"))
	}
	for _, src := range reg.Sources {
		fmt.Printf("  %s: %d episodes, %s/%s, indexed %s\n",
			src.Key, src.Episodes, src.Provider, src.Model,
			src.IndexedAt.Format("2006-01-02"))
	}
	fmt.Println()

	return nil
}
