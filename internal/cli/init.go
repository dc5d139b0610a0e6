package cli

import (
	"fmt"

	"github.com/kilupskalvis/unify/internal/config"
	"github.com/kilupskalvis/unify/internal/store"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new unify workspace",
	Long: `Initialize a new unify workspace in the current directory.
This creates a .unify directory holding configuration, saved batches,
input history, and the run log.`,
	Run: runInit,
}

func runInit(cmd *cobra.Command, args []string) {
	// Check if already initialized
	if _, err := config.FindUnifyRoot(); err == nil {
		exitError("unify workspace already exists")
	}

	cfg, err := config.Initialize()
	if err != nil {
		exitError("%v", err)
	}

	st, err := store.New(cfg.DatabasePath())
	if err != nil {
		exitError("failed to create store: %v", err)
	}
	defer st.Close()

	if err := st.Initialize(); err != nil {
		exitError("failed to initialize store: %v", err)
	}

	fmt.Printf("Initialized unify workspace in %s\n", cfg.UnifyPath())
}
