package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Manage per-project terminology",
}

var glossaryAddCmd = &cobra.Command{
	Use:   "add [project-id] [original] [translation]",
	Short: "Add a confirmed glossary term",
	Args:  cobra.ExactArgs(3),
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
		termType, _ := cmd.Flags().GetString("type")
		e, err := c.Glossary.Add(projectID, args[1], args[2], termType)
		if err != nil {
			return err
		}
		fmt.Printf("added term %d: %s = %s (%s)\n", e.ID, e.OriginalTerm, e.TranslatedTerm, e.TermType)
		return nil
	},
}

var glossaryListCmd = &cobra.Command{
	Use:   "list [project-id]",
	Short: "List glossary terms",
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
		list, err := c.Glossary.List(projectID)
		if err != nil {
			return err
		}
		for _, e := range list {
			mark := " "
			if e.Confirmed {
				mark = "*"
			}
			fmt.Printf("%4d %s %-10s %-25s = %-25s used %d\n", e.ID, mark, e.TermType, e.OriginalTerm, e.TranslatedTerm, e.UsageCount)
		}
		return nil
	},
}

var glossaryStatsCmd = &cobra.Command{
	Use:   "stats [project-id]",
	Short: "Show glossary statistics",
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
		st, err := c.Glossary.Statistics(projectID)
		if err != nil {
			return err
		}
		fmt.Printf("terms: %d (%d confirmed, %d unconfirmed)\n",
			st.TotalTerms, st.ByStatus["confirmed"], st.ByStatus["unconfirmed"])
		for typ, n := range st.ByType {
			fmt.Printf("  %-10s %d\n", typ, n)
		}
		if len(st.MostUsed) > 0 {
			fmt.Println("most used:")
			for _, u := range st.MostUsed {
				fmt.Printf("  %-25s %d\n", u.Original, u.Count)
			}
		}
		return nil
	},
}

var glossaryConfirmCmd = &cobra.Command{
	Use:   "confirm [project-id] [term-id...]",
	Short: "Confirm extracted terms",
	Args:  cobra.MinimumNArgs(2),
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
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		n, err := c.Glossary.BulkConfirm(projectID, ids)
		if err != nil {
			return err
		}
		fmt.Printf("confirmed %d terms\n", n)
		return nil
	},
}

var glossaryDeleteCmd = &cobra.Command{
	Use:   "delete [project-id] [term-id...]",
	Short: "Delete glossary terms",
	Args:  cobra.MinimumNArgs(2),
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
		ids, err := parseIDs(args[1:])
		if err != nil {
			return err
		}
		n, err := c.Glossary.BulkDelete(projectID, ids)
		if err != nil {
			return err
		}
		fmt.Printf("deleted %d terms\n", n)
		return nil
	},
}

var glossaryMergeCmd = &cobra.Command{
	Use:   "merge [project-id]",
	Short: "Merge duplicate terms, keeping the strongest entry",
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
		n, err := c.Glossary.MergeDuplicates(projectID)
		if err != nil {
			return err
		}
		fmt.Printf("merged away %d duplicate entries\n", n)
		return nil
	},
}

var glossarySimilarCmd = &cobra.Command{
	Use:   "similar [project-id] [term]",
	Short: "Find terms similar to the given one",
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
		threshold, _ := cmd.Flags().GetFloat64("threshold")
		similar, err := c.Glossary.FindSimilar(projectID, args[1], threshold)
		if err != nil {
			return err
		}
		for _, s := range similar {
			fmt.Printf("%.2f  %s = %s\n", s.Similarity, s.OriginalTerm, s.TranslatedTerm)
		}
		return nil
	},
}

var glossaryCheckCmd = &cobra.Command{
	Use:   "check [project-id]",
	Short: "Report near-duplicate terms translated differently",
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
		report, err := c.Glossary.AnalyzeConsistency(projectID)
		if err != nil {
			return err
		}
		if report.IssueCount == 0 {
			fmt.Println("no consistency issues found")
			return nil
		}
		fmt.Printf("%d issues:\n", report.IssueCount)
		for _, issue := range report.ConsistencyIssues {
			fmt.Printf("  %q -> %q  vs  %q -> %q\n",
				issue.Term1, issue.Translation1, issue.Term2, issue.Translation2)
		}
		return nil
	},
}

var glossarySuggestCmd = &cobra.Command{
	Use:   "suggest [term]",
	Short: "Suggest Turkish translations for an English term",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		suggestions := c.Glossary.SuggestTranslations(args[0])
		if len(suggestions) == 0 {
			fmt.Println("no suggestions")
			return nil
		}
		fmt.Println(strings.Join(suggestions, "\n"))
		return nil
	},
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func init() {
	glossaryAddCmd.Flags().String("type", domain.TermGeneral, "Term type: character, location, skill, item or general")
	glossarySimilarCmd.Flags().Float64("threshold", 0, "Similarity threshold (default 0.7)")

	glossaryCmd.AddCommand(
		glossaryAddCmd, glossaryListCmd, glossaryStatsCmd,
		glossaryConfirmCmd, glossaryDeleteCmd, glossaryMergeCmd,
		glossarySimilarCmd, glossaryCheckCmd, glossarySuggestCmd,
	)
	rootCmd.AddCommand(glossaryCmd)
}
