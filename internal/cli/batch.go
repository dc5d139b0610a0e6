package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/fatih/color"
	"github.com/kilupskalvis/unify/internal/core"
	"github.com/kilupskalvis/unify/internal/models"
	"github.com/kilupskalvis/unify/internal/scan"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Manage and run saved reconciliation jobs",
	Long: `A batch is a saved (root, pattern, policy) tuple. 'batch run'
executes every saved batch; independent batches run concurrently since
each one touches its own set of files.`,
}

var batchSaveCmd = &cobra.Command{
	Use:   "save <name> <pattern>",
	Short: "Save a reconciliation job",
	Args:  cobra.ExactArgs(2),
	Run:   runBatchSave,
}

var batchListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved batches",
	Run:   runBatchList,
}

var batchRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Delete a saved batch",
	Args:  cobra.ExactArgs(1),
	Run:   runBatchRm,
}

var batchRunCmd = &cobra.Command{
	Use:   "run [name...]",
	Short: "Run saved batches (all by default)",
	Run:   runBatchRun,
}

var (
	batchSaveRoot   string
	batchSavePolicy string
)

func init() {
	batchSaveCmd.Flags().StringVar(&batchSaveRoot, "root", "", "Directory to scan (default: workspace root)")
	batchSaveCmd.Flags().StringVarP(&batchSavePolicy, "policy", "p", "", "Resolution policy: left, right or union (default: from config)")

	batchCmd.AddCommand(batchSaveCmd)
	batchCmd.AddCommand(batchListCmd)
	batchCmd.AddCommand(batchRmCmd)
	batchCmd.AddCommand(batchRunCmd)
}

func runBatchSave(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	root := batchSaveRoot
	if root == "" {
		root = c.Config.WorkspaceRoot()
	}
	policy := batchSavePolicy
	if policy == "" {
		policy = c.Config.DefaultPolicy
	}
	if policy == "interactive" {
		exitError("batches run unattended; pick a policy of left, right or union")
	}
	if _, err := decideForPolicy(policy, nil); err != nil {
		exitError("%v", err)
	}

	batch := &models.Batch{
		Name:    args[0],
		Root:    root,
		Pattern: args[1],
		Policy:  policy,
	}
	if err := c.Store.SaveBatch(batch); err != nil {
		exitError("%v", err)
	}
	fmt.Printf("Saved batch '%s': %s in %s (%s)\n", batch.Name, batch.Pattern, batch.Root, batch.Policy)
}

func runBatchList(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	batches, err := c.Store.ListBatches()
	if err != nil {
		exitError("%v", err)
	}
	if len(batches) == 0 {
		fmt.Println("No saved batches.")
		return
	}

	bold := color.New(color.Bold)
	for _, b := range batches {
		bold.Printf("%s", b.Name)
		fmt.Printf("  %s in %s (%s)\n", b.Pattern, b.Root, b.Policy)
	}
}

func runBatchRm(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	if err := c.Store.DeleteBatch(args[0]); err != nil {
		exitError("%v", err)
	}
	fmt.Printf("Deleted batch '%s'\n", args[0])
}

func runBatchRun(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	batches, err := selectBatches(c, args)
	if err != nil {
		exitError("%v", err)
	}
	if len(batches) == 0 {
		fmt.Println("No saved batches.")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	limit := c.Config.Concurrency
	if limit <= 0 {
		limit = runtime.NumCPU()
	}

	// Results come back per batch; the store is written from this
	// goroutine only, after all runs finish.
	results := make([]*models.MergeCompletionResult, len(batches))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, b := range batches {
		i, b := i, b
		g.Go(func() error {
			result, err := runOneBatch(gctx, c, b)
			results[i] = result
			return err
		})
	}
	runErr := g.Wait()

	failed := 0
	for i, b := range batches {
		if results[i] == nil {
			continue
		}
		if _, err := c.Store.RecordRun(b.Root, b.Pattern, results[i]); err != nil {
			color.New(color.FgYellow).Printf("Warning: failed to record run for '%s': %v\n", b.Name, err)
		}
		fmt.Printf("\nBatch '%s':", b.Name)
		printCompletion(results[i])
		if !results[i].Success {
			failed++
		}
	}

	if runErr != nil {
		exitError("%v", runErr)
	}
	if failed > 0 {
		exitError("%d of %d batches did not complete", failed, len(batches))
	}
}

// selectBatches resolves which batches to run: all saved ones, or the
// named subset.
func selectBatches(c *cmdContext, names []string) ([]*models.Batch, error) {
	if len(names) == 0 {
		return c.Store.ListBatches()
	}

	var batches []*models.Batch
	for _, name := range names {
		b, err := c.Store.GetBatch(name)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, fmt.Errorf("batch '%s' not found", name)
		}
		batches = append(batches, b)
	}
	return batches, nil
}

func runOneBatch(ctx context.Context, c *cmdContext, b *models.Batch) (*models.MergeCompletionResult, error) {
	if b.Policy == "interactive" {
		return nil, fmt.Errorf("batch '%s' has no unattended policy; re-save it with left, right or union", b.Name)
	}
	decide, err := decideForPolicy(b.Policy, nil)
	if err != nil {
		return nil, fmt.Errorf("batch '%s': %w", b.Name, err)
	}

	paths, err := scan.FindFiles(b.Root, b.Pattern, c.Config.ExcludeDirs)
	if err != nil {
		return nil, fmt.Errorf("batch '%s': %w", b.Name, err)
	}

	groups, _ := core.GroupFiles(paths)
	return core.RunSession(ctx, groups, core.SessionCallbacks{Decide: decide}, core.SessionOptions{
		ContextSize: c.Config.ContextSize,
		Parallelism: 1, // batches already run in parallel with each other
	})
}
