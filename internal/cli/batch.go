package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch-translate sets of chapters",
}

var batchRunCmd = &cobra.Command{
	Use:   "run [project-id] [chapter-id...]",
	Short: "Create a batch job and process it to completion",
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
		chapterIDs := make([]int64, 0, len(args)-1)
		for _, a := range args[1:] {
			id, err := parseID(a)
			if err != nil {
				return err
			}
			chapterIDs = append(chapterIDs, id)
		}

		ctx := context.Background()
		jobID, err := c.Runner.Create(ctx, projectID, chapterIDs)
		if err != nil {
			return err
		}
		// The CLI waits for the whole batch rather than detaching.
		if err := c.Runner.Run(ctx, jobID); err != nil {
			return err
		}
		return printJob(c, jobID)
	},
}

var batchStatusCmd = &cobra.Command{
	Use:   "status [job-id]",
	Short: "Show a batch job's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		jobID, err := parseID(args[0])
		if err != nil {
			return err
		}
		return printJob(c, jobID)
	},
}

var batchCancelCmd = &cobra.Command{
	Use:   "cancel [job-id]",
	Short: "Cancel a pending or running batch job",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		jobID, err := parseID(args[0])
		if err != nil {
			return err
		}
		ok, err := c.Jobs.Cancel(jobID)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("job %d is already finished\n", jobID)
			return nil
		}
		fmt.Printf("job %d cancelled\n", jobID)
		return nil
	},
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent batch jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := buildContainer()
		if err != nil {
			return err
		}
		defer c.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		jobs, err := c.Jobs.List(limit)
		if err != nil {
			return err
		}
		for _, j := range jobs {
			fmt.Printf("%4d  project %-4d %-10s %3d%%  %d/%d chapters\n",
				j.ID, j.ProjectID, j.Status, j.Progress, j.CompletedChapters, j.TotalChapters)
		}
		return nil
	},
}

func printJob(c *container, jobID int64) error {
	st, err := c.Jobs.Status(jobID)
	if err != nil {
		return err
	}
	fmt.Printf("job %d: %s, %d%%, %d/%d chapters\n",
		st.ID, st.Status, st.Progress, st.CompletedChapters, st.TotalChapters)
	for _, f := range st.Failed {
		fmt.Printf("  chapter %d failed: %s\n", f.ChapterID, f.Error)
	}
	return nil
}

func init() {
	batchListCmd.Flags().Int("limit", 20, "Maximum jobs to list")
	batchCmd.AddCommand(batchRunCmd, batchStatusCmd, batchCancelCmd, batchListCmd)
	rootCmd.AddCommand(batchCmd)
}
