package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var projectDir string

var rootCmd = &cobra.Command{
	Use:   "versesdk",
	Short: "Verse SDK - retrieval-augmented Puranic context for verse collections",
	Long: `Verse SDK enriches devotional verse files with grounded Puranic context.

It indexes large source texts into discrete, embedded episodes, then
annotates verses by retrieving the most relevant episodes and constraining
a generation step to only those episodes before merging validated entries
into the verse frontmatter.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", ".", "Project directory containing _data/ and _verses/")
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
