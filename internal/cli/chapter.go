package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var chapterCmd = &cobra.Command{
	Use:   "chapter",
	Short: "Manage chapters of a project",
}

var chapterAddCmd = &cobra.Command{
	Use:   "add [project-id]",
	Short: "Add a chapter from a file or inline text",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		number, _ := cmd.Flags().GetInt("number")
		title, _ := cmd.Flags().GetString("title")
		text, _ := cmd.Flags().GetString("text")
		file, _ := cmd.Flags().GetString("file")

		if file != "" {
			b, err := os.ReadFile(file)
			if err != nil {
				return err
			}
			text = string(b)
		}
		ch, err := c.Chapters.Create(projectID, number, title, text)
		if err != nil {
			return err
		}
		fmt.Printf("added chapter %d (#%d) to project %d\n", ch.ID, ch.Number, projectID)
		return nil
	},
}

var chapterImportCmd = &cobra.Command{
	Use:   "import [project-id] [file]",
	Short: "Split a manuscript file into chapters",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		res, err := c.Import.ImportFile(projectID, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("imported %d chapters (%d..%d)\n", res.Chapters, res.First, res.Last)
		return nil
	},
}

var chapterListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List chapters of a project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		projectID, err := parseID(args[0])
		if err != nil {
			return err
		}
		list, err := c.Chapters.ListByProject(projectID)
		if err != nil {
			return err
		}
		for _, ch := range list {
			fmt.Printf("%4d  #%-4d %-12s %s\n", ch.ID, ch.Number, ch.Status, ch.Title)
		}
		return nil
	},
}

var chapterShowCmd = &cobra.Command{
	Use:   "show [chapter-id]",
	Short: "Print a chapter's translation, or its original text",
	Args:  cobra.ExactArgs(1),
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
		ch, err := c.Chapters.Get(id)
		if err != nil {
			return err
		}
		original, _ := cmd.Flags().GetBool("original")
		if original || ch.TranslatedText == nil {
			fmt.Println(ch.OriginalText)
			return nil
		}
		fmt.Println(*ch.TranslatedText)
		return nil
	},
}

var chapterDeleteCmd = &cobra.Command{
	Use:   "delete [chapter-id]",
	Short: "Delete a chapter",
	Args:  cobra.ExactArgs(1),
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
		if _, err := c.Chapters.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted chapter %d\n", id)
		return nil
	},
}

func init() {
	chapterAddCmd.Flags().Int("number", 1, "Chapter number")
	chapterAddCmd.Flags().String("title", "", "Chapter title")
	chapterAddCmd.Flags().String("text", "", "Chapter text")
	chapterAddCmd.Flags().String("file", "", "Read chapter text from this file")

	chapterShowCmd.Flags().Bool("original", false, "Print the original text instead of the translation")

	chapterCmd.AddCommand(chapterAddCmd, chapterImportCmd, chapterListCmd, chapterShowCmd, chapterDeleteCmd)
	rootCmd.AddCommand(chapterCmd)
}
