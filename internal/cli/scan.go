package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/kilupskalvis/unify/internal/core"
	"github.com/kilupskalvis/unify/internal/scan"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan <pattern>",
	Short: "Find and group versions of a file without merging",
	Long: `Scan the workspace for files matching the given name pattern and
group the byte-identical copies. Each group is one distinct version;
more than one group means the copies have diverged.

Examples:
  unify scan config.yaml        # All copies named config.yaml
  unify scan "*.env"            # Glob over base names
  unify scan --root /srv app.py # Scan outside the workspace`,
	Args: cobra.ExactArgs(1),
	Run:  runScan,
}

var scanRoot string

func init() {
	scanCmd.Flags().StringVar(&scanRoot, "root", "", "Directory to scan (default: workspace root)")
}

func runScan(cmd *cobra.Command, args []string) {
	c := initContextWithMigrations()
	defer c.Close()

	pattern := args[0]
	root := scanRoot
	if root == "" {
		root = c.Config.WorkspaceRoot()
	}

	paths, err := scan.FindFiles(root, pattern, c.Config.ExcludeDirs)
	if err != nil {
		exitError("%v", err)
	}
	if len(paths) == 0 {
		fmt.Printf("No files matching %q under %s\n", pattern, root)
		return
	}

	groups, skipped := core.GroupFiles(paths)

	yellow := color.New(color.FgYellow)
	for _, sk := range skipped {
		yellow.Printf("Warning: skipped %s: %v\n", sk.Path, sk.Reason)
	}

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)
	for i, g := range groups {
		bold.Printf("Version %d", i+1)
		dim.Printf("  [%s]\n", g.Fingerprint)
		for _, p := range g.Paths {
			fmt.Printf("  %s\n", p)
		}
	}

	if len(groups) > 1 {
		fmt.Printf("\n%d distinct versions across %d files; run 'unify merge %s' to reconcile\n",
			len(groups), len(paths), pattern)
	} else {
		color.New(color.FgGreen).Printf("\nAll %d copies are identical\n", len(paths))
	}
}
