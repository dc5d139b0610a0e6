// Command unify reconciles divergent copies of the same file.
package main

import (
	"os"

	"github.com/kilupskalvis/unify/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
