package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage translation projects",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")
		providerName, _ := cmd.Flags().GetString("provider")
		model, _ := cmd.Flags().GetString("model")

		p, err := c.Projects.Create(domain.Project{
			Name:        name,
			Description: desc,
			SourceLang:  source,
			TargetLang:  target,
			Provider:    providerName,
			Model:       model,
		})
		if err != nil {
			return err
		}
		fmt.Printf("created project %d: %s (%s -> %s, %s)\n", p.ID, p.Name, p.SourceLang, p.TargetLang, p.Provider)
		return nil
	},
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		list, err := c.Projects.List()
		if err != nil {
			return err
		}
		for _, p := range list {
			fmt.Printf("%4d  %-30s %s -> %s  %s\n", p.ID, p.Name, p.SourceLang, p.TargetLang, p.Provider)
		}
		return nil
	},
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete [project-id]",
	Short: "Delete a project and everything in it",
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
		if _, err := c.Projects.Delete(id); err != nil {
			return err
		}
		fmt.Printf("deleted project %d\n", id)
		return nil
	},
}

var projectStatsCmd = &cobra.Command{
	Use:   "stats [project-id]",
	Short: "Show translation progress for a project",
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
		st, err := c.Translate.Statistics(id)
		if err != nil {
			return err
		}
		fmt.Printf("chapters: %d total, %d completed, %d pending, %d error\n",
			st.TotalChapters, st.CompletedChapters, st.PendingChapters, st.ErrorChapters)
		fmt.Printf("words: %d original, %d translated\n", st.TotalWords, st.TranslatedWords)
		fmt.Printf("completion: %.1f%%\n", st.CompletionRate)
		fmt.Printf("glossary terms: %d\n", st.GlossaryTerms)
		return nil
	},
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func init() {
	projectCreateCmd.Flags().String("name", "", "Project name (required)")
	projectCreateCmd.Flags().String("description", "", "Project description")
	projectCreateCmd.Flags().String("source", "en", "Source language code")
	projectCreateCmd.Flags().String("target", "tr", "Target language code")
	projectCreateCmd.Flags().String("provider", "gemini", "Translation backend")
	projectCreateCmd.Flags().String("model", "", "Model override for the backend")
	_ = projectCreateCmd.MarkFlagRequired("name")

	projectCmd.AddCommand(projectCreateCmd, projectListCmd, projectDeleteCmd, projectStatsCmd)
	rootCmd.AddCommand(projectCmd)
}
