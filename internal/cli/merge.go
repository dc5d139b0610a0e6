package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/kilupskalvis/unify/internal/core"
	"github.com/kilupskalvis/unify/internal/models"
	"github.com/kilupskalvis/unify/internal/scan"
	"github.com/spf13/cobra"
)

var mergeCmd = &cobra.Command{
	Use:   "merge <pattern>",
	Short: "Reconcile all versions of a file into one",
	Long: `Find every file matching the pattern, group the identical copies,
and iteratively merge the divergent versions, most similar pair first,
until one version remains. The merged result is written back to every
matched path.

Conflicting blocks are resolved interactively unless a policy is given.

Examples:
  unify merge config.yaml             # Interactive reconciliation
  unify merge -p left config.yaml     # Always prefer the left side
  unify merge -p union "*.env"        # Keep both sides, with conflict markers`,
	Args: cobra.ExactArgs(1),
	Run:  runMerge,
}

var (
	mergeRoot    string
	mergePolicy  string
	mergeContext int
)

func init() {
	mergeCmd.Flags().StringVar(&mergeRoot, "root", "", "Directory to scan (default: workspace root)")
	mergeCmd.Flags().StringVarP(&mergePolicy, "policy", "p", "", "Resolution policy: interactive, left, right or union (default: from config)")
	mergeCmd.Flags().IntVar(&mergeContext, "context", 0, "Context lines shown around each conflict (default: from config)")
}

func runMerge(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	pattern := args[0]
	root := mergeRoot
	if root == "" {
		root = c.Config.WorkspaceRoot()
	}

	policy := mergePolicy
	if policy == "" {
		policy = c.Config.DefaultPolicy
	}
	decide, err := decideForPolicy(policy, newPrompter())
	if err != nil {
		exitError("%v", err)
	}

	contextSize := mergeContext
	if contextSize == 0 {
		contextSize = c.Config.ContextSize
	}

	paths, err := scan.FindFiles(root, pattern, c.Config.ExcludeDirs)
	if err != nil {
		exitError("%v", err)
	}
	if len(paths) == 0 {
		exitError("no files matching %q under %s", pattern, root)
	}

	// Remember the inputs for next time.
	c.Store.AddInput("pattern", pattern)
	c.Store.AddInput("root", root)

	groups, skipped := core.GroupFiles(paths)
	yellow := color.New(color.FgYellow)
	for _, sk := range skipped {
		yellow.Printf("Warning: skipped %s: %v\n", sk.Path, sk.Reason)
	}

	fmt.Printf("%d files, %d distinct versions\n", len(paths), len(groups))
	if len(groups) < 2 {
		color.New(color.FgGreen).Println("Nothing to merge.")
		return
	}

	// Ctrl-C cancels cooperatively between merge steps.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	callbacks := core.SessionCallbacks{
		Decide: decide,
		Status: printStatus,
	}
	opts := core.SessionOptions{
		ContextSize: contextSize,
		Parallelism: c.Config.Concurrency,
	}

	result, runErr := core.RunSession(ctx, groups, callbacks, opts)

	if _, err := c.Store.RecordRun(root, pattern, result); err != nil {
		yellow.Printf("Warning: failed to record run: %v\n", err)
	}

	printCompletion(result)
	if runErr != nil {
		exitError("%v", runErr)
	}
	if !result.Success {
		os.Exit(1)
	}
}

// printCompletion renders the final session summary.
func printCompletion(result *models.MergeCompletionResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)

	fmt.Println()
	for _, op := range result.Operations {
		fmt.Printf("  #%d %s + %s (%.1f%% similar): %d files updated, %d lines",
			op.OperationNumber, op.PathLeft, op.PathRight,
			op.SimilarityScore*100, op.FilesAffected, op.MergedLineCount)
		if op.ConflictsResolved > 0 {
			yellow.Printf(", %d conflicts kept as markers", op.ConflictsResolved)
		}
		fmt.Println()
	}

	for _, w := range result.Warnings {
		yellow.Printf("  Warning: %s\n", w)
	}

	if result.Success {
		green.Printf("Done: %d merge operations, %d files updated\n",
			result.TotalMergeOperations, result.TotalFilesMerged)
	} else {
		red.Printf("Stopped after %d merge operations; completed merges are kept\n",
			result.TotalMergeOperations)
	}
}
