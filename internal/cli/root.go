// Package cli implements the command-line interface for unify.
package cli

import (
	"fmt"
	"os"

	"github.com/kilupskalvis/unify/internal/config"
	"github.com/kilupskalvis/unify/internal/store"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config *config.Config
	Store  *store.Store
}

// Close releases resources held by cmdContext
func (c *cmdContext) Close() {
	if c.Store != nil {
		c.Store.Close()
	}
}

// initContext initializes config and store
func initContext() *cmdContext {
	cfg, err := config.Load()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to open store: %v", err)
	}

	return &cmdContext{Config: cfg, Store: st}
}

// initContextWithMigrations initializes config, store, and runs migrations
func initContextWithMigrations() *cmdContext {
	ctx := initContext()

	if err := ctx.Store.RunMigrations(); err != nil {
		ctx.Close()
		exitError("failed to run migrations: %v", err)
	}

	return ctx
}

var rootCmd = &cobra.Command{
	Use:   "unify",
	Short: "Reconcile divergent copies of the same file",
	Long: `unify finds copies of the "same" file scattered across directories or
repositories, groups the byte-identical ones, and iteratively merges the
divergent versions (always the two most similar first) until a single
version remains. The result is written back to every location, keeping
all copies in sync.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(historyCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
