package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/maze"
)

func (c *CLI) historyCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently saved mazes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			mazes, err := st.List(ctx, limit)
			if err != nil {
				return err
			}
			if len(mazes) == 0 {
				printInfo(c.errOut, "No saved mazes. Use %s to save one.", StyleValue.Render("perfectmaze generate --save"))
				return nil
			}
			fmt.Fprintln(c.out, historyTable(mazes, time.Now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of mazes to list")
	return cmd
}

func historyTable(mazes []*maze.Maze, now time.Time) string {
	rows := make([][]string, 0, len(mazes))
	for _, m := range mazes {
		rows = append(rows, []string{
			m.ID,
			fmt.Sprintf("%dx%d", m.Width, m.Height),
			fmt.Sprintf("%d", m.Seed),
			m.Strategy,
			m.Pattern,
			formatRelativeTime(m.CreatedAt, now),
		})
	}
	return newTable("ID", "Size", "Seed", "Strategy", "Pattern", "Created").Rows(rows...).Render()
}

func formatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}
