package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var translateCmd = &cobra.Command{
	Use:   "translate [chapter-id]",
	Short: "Translate one chapter",
	Long: `Translate a chapter through the project's configured backend.
Glossary terms are applied to the prompt, extracted terms flow back
into the glossary, and a content-addressed cache avoids repeat calls
for unchanged text.

Examples:
  noveltrans translate 12
  noveltrans translate 12 --no-extract
  noveltrans translate 12 --cache refresh`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		noExtract, _ := cmd.Flags().GetBool("no-extract")
		cacheMode, _ := cmd.Flags().GetString("cache")
		chunkSize, _ := cmd.Flags().GetInt("chunk-size")
		if chunkSize == 0 {
			chunkSize = c.cfg.ChunkSize
		}

		out, err := c.Translate.Translate(id, !noExtract, cacheMode, chunkSize)
		if err != nil {
			return err
		}
		if !out.Success {
			return fmt.Errorf("translation failed: %s", out.Error)
		}
		st := out.Stats
		fmt.Printf("chapter %d translated (%d chunks", out.ChapterID, st.ChunksProcessed)
		if st.FromCache {
			fmt.Print(", from cache")
		}
		if st.Cost != nil {
			fmt.Printf(", $%.6f", st.Cost.TotalCost)
		}
		fmt.Printf(", %d new terms)\n", st.NewTermsFound)
		return nil
	},
}

func init() {
	translateCmd.Flags().Bool("no-extract", false, "Skip glossary term extraction")
	translateCmd.Flags().String("cache", "", "Cache mode: use, bypass or refresh")
	translateCmd.Flags().Int("chunk-size", 0, "Chunk character budget (0 uses the configured default)")
	rootCmd.AddCommand(translateCmd)
}
