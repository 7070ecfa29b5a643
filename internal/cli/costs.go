package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	apiapp "github.com/turanbagtur/novel-translator/internal/api/app"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Inspect the translation cost ledger",
}

var costsProjectCmd = &cobra.Command{
	Use:   "project [project-id]",
	Short: "Cost summary for one project",
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
		report, err := c.Costs.ProjectCosts(id)
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

var costsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Cost summary across all projects",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		report, err := c.Costs.Summary()
		if err != nil {
			return err
		}
		printReport(report)
		return nil
	},
}

func printReport(r *apiapp.CostReport) {
	fmt.Printf("total: $%.4f %s, %d tokens, %d calls\n", r.TotalCost, r.Currency, r.TotalTokens, r.Transactions)
	for name, pc := range r.ByProvider {
		fmt.Printf("  %-20s $%.4f  %d tokens  %d calls\n", name, pc.TotalCost, pc.TotalTokens, pc.Count)
	}
}

func init() {
	costsCmd.AddCommand(costsProjectCmd, costsSummaryCmd)
	rootCmd.AddCommand(costsCmd)
}
