package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/core/topology"
	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// errNotPerfect makes verify exit non-zero after printing its report.
var errNotPerfect = fmt.Errorf("maze is not perfect")

func (c *CLI) verifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <maze.json>",
		Short: "Check that a saved maze is perfect",
		Long: `Check that a saved maze is perfect: every free cell visited, walls
symmetric, border closed, and exactly one path between any two free cells.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := maze.ReadFile(args[0])
			if err != nil {
				return err
			}
			g, err := m.Grid()
			if err != nil {
				return err
			}

			report := topology.Analyze(g, m.ReservedSet())
			fmt.Fprintln(c.out, reportTable(report))

			if !report.Perfect() {
				printError(c.errOut, "%s is not a perfect maze", args[0])
				return errNotPerfect
			}
			printSuccess(c.errOut, "%s is a perfect maze", args[0])
			return nil
		},
	}
}
