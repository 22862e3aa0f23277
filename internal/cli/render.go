package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/pipeline"
)

func (c *CLI) renderCommand() *cobra.Command {
	var (
		formats, output, glyphs string
		showReserved, noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "render <maze.json>",
		Short: "Render a saved maze document",
		Example: `  perfectmaze generate -f json -o maze.json
  perfectmaze render maze.json --glyphs unicode
  perfectmaze render maze.json -f svg,png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			m, err := maze.ReadFile(args[0])
			if err != nil {
				return err
			}
			logger.Debug("loaded maze", "id", m.ID, "size", fmt.Sprintf("%dx%d", m.Width, m.Height))

			if glyphs == "" {
				glyphs = c.Config.Maze.Glyphs
			}
			opts := pipeline.Options{
				Formats:      parseFormats(formats),
				Glyphs:       glyphs,
				ShowReserved: showReserved,
				Logger:       c.Logger,
			}
			if err := opts.ValidateForRender(); err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			artifacts, err := runner.RenderMaze(ctx, m, opts)
			if err != nil {
				return err
			}
			return c.writeArtifacts(artifacts, opts.Formats, output, args[0])
		},
	}

	cmd.Flags().StringVarP(&formats, "format", "f", "", "output format(s): text (default), hex, json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVar(&glyphs, "glyphs", "", "text glyphs: ascii (default), unicode")
	cmd.Flags().BoolVar(&showReserved, "show-reserved", false, "draw the pattern in dot/svg/png/pdf output")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
