package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent merge runs",
	Long:  `Display recent merge runs recorded in this workspace.`,
	Run:   runHistory,
}

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Limit the number of runs to show")
}

func runHistory(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	runs, err := c.Store.RecentRuns(historyLimit)
	if err != nil {
		exitError("failed to read run history: %v", err)
	}

	if len(runs) == 0 {
		fmt.Println("No merge runs yet")
		return
	}

	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if patterns, err := c.Store.RecentInputs("pattern", 5); err == nil && len(patterns) > 0 {
		fmt.Printf("Recent patterns: %s\n\n", strings.Join(patterns, ", "))
	}

	for _, run := range runs {
		yellow.Printf("run %d", run.ID)
		if run.Result.Success {
			green.Print(" ok")
		} else {
			red.Print(" failed")
		}
		fmt.Println()
		fmt.Printf("Date:    %s\n", run.Timestamp.Format("Mon Jan 2 15:04:05 2006"))
		fmt.Printf("Root:    %s\n", run.Root)
		fmt.Printf("Pattern: %s\n", run.Pattern)
		fmt.Printf("Merges:  %d (%d files updated)\n", run.Result.TotalMergeOperations, run.Result.TotalFilesMerged)
		if len(run.Result.Warnings) > 0 {
			fmt.Printf("Warnings: %d\n", len(run.Result.Warnings))
		}
		fmt.Println()
	}
}
