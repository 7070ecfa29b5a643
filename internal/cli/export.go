package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export translations and glossaries to files",
}

var exportProjectCmd = &cobra.Command{
	Use:   "project [project-id]",
	Short: "Export a project's completed chapters as one document",
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
		format, _ := cmd.Flags().GetString("format")
		path, err := c.Export.ExportProject(id, format)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var exportChapterCmd = &cobra.Command{
	Use:   "chapter [chapter-id]",
	Short: "Export one translated chapter",
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
		path, err := c.Export.ExportChapter(id)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var exportGlossaryCmd = &cobra.Command{
	Use:   "glossary [project-id]",
	Short: "Export a project glossary as CSV",
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
		path, err := c.Export.ExportGlossary(id)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

func init() {
	exportProjectCmd.Flags().String("format", "txt", "Output format: txt or markdown")

	exportCmd.AddCommand(exportProjectCmd, exportChapterCmd, exportGlossaryCmd)
	rootCmd.AddCommand(exportCmd)
}
