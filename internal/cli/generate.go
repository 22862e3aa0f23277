package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/config"
	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/pipeline"
)

// generateFlags holds the command-line flags of the generate command.
type generateFlags struct {
	width, height int
	seed          uint64
	strategy      string
	maxDepth      int
	pattern       string
	patternFile   string
	fit           string
	glyphs        string
	formats       string
	output        string
	showReserved  bool
	noCache       bool
	refresh       bool
	save          bool
}

func (c *CLI) generateCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Carve a perfect maze",
		Long: `Carve a perfect maze with a randomized depth-first backtracker.

The "42" pattern is reserved in the middle of the grid when it fits; smaller
grids are carved without it. Text output goes to stdout unless -o is given.`,
		Example: `  perfectmaze generate -W 40 -H 20 --seed 7
  perfectmaze generate --pattern none -f hex
  perfectmaze generate -f text,svg -o mazes/big --glyphs unicode --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.generateOptions(cmd, f)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd.Context(), opts, f)
		},
	}

	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "maze width in cells (default from config, 20)")
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "maze height in cells (default from config, 10)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (default: a fresh seed, reported in the log)")
	cmd.Flags().StringVar(&f.strategy, "strategy", "", "backtracker strategy: iterative (default), recursive")
	cmd.Flags().IntVar(&f.maxDepth, "max-depth", 0, "free-cell limit of the recursive strategy")
	cmd.Flags().StringVar(&f.pattern, "pattern", "", "reserved pattern: 42 (default), none")
	cmd.Flags().StringVar(&f.patternFile, "pattern-file", "", "TOML file with a custom pattern (rows, fit, min_width, min_height)")
	cmd.Flags().StringVar(&f.fit, "fit", "", "pattern fit: scale (default), exact")
	cmd.Flags().StringVar(&f.glyphs, "glyphs", "", "text glyphs: ascii (default), unicode")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): text (default), hex, json, dot, svg, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&f.showReserved, "show-reserved", false, "draw the pattern in dot/svg/png/pdf output")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "regenerate even if cached")
	cmd.Flags().BoolVar(&f.save, "save", false, "save the maze to the configured store")

	return cmd
}

// generateOptions merges the config file with the flags that were set.
func (c *CLI) generateOptions(cmd *cobra.Command, f generateFlags) (pipeline.Options, error) {
	mc, pc := c.Config.Maze, c.Config.Pattern
	opts := pipeline.Options{
		Width:             mc.Width,
		Height:            mc.Height,
		Seed:              mc.Seed,
		Strategy:          mc.Strategy,
		MaxRecursionDepth: mc.MaxRecursionDepth,
		Pattern:           pc.Name,
		PatternRows:       pc.Rows,
		PatternFit:        pc.Fit,
		MinPatternWidth:   pc.MinWidth,
		MinPatternHeight:  pc.MinHeight,
		Glyphs:            mc.Glyphs,
		Formats:           parseFormats(f.formats),
		ShowReserved:      f.showReserved,
		Refresh:           f.refresh,
		Logger:            c.Logger,
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = f.width
	}
	if flags.Changed("height") {
		opts.Height = f.height
	}
	if flags.Changed("seed") {
		seed := f.seed
		opts.Seed = &seed
	}
	if flags.Changed("strategy") {
		opts.Strategy = f.strategy
	}
	if flags.Changed("max-depth") {
		opts.MaxRecursionDepth = f.maxDepth
	}
	if flags.Changed("pattern") {
		opts.Pattern = f.pattern
		opts.PatternRows = nil
	}
	if f.patternFile != "" {
		pf, err := readPatternFile(f.patternFile)
		if err != nil {
			return opts, err
		}
		opts.Pattern = maze.PatternCustom
		opts.PatternRows = pf.Rows
		opts.MinPatternWidth, opts.MinPatternHeight = pf.MinWidth, pf.MinHeight
		if pf.Fit != "" {
			opts.PatternFit = pf.Fit
		}
	}
	if flags.Changed("fit") {
		opts.PatternFit = f.fit
	}
	if flags.Changed("glyphs") {
		opts.Glyphs = f.glyphs
	}

	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, err
	}
	return opts, nil
}

// readPatternFile reads a custom pattern:
//
//	rows = ["11011", "10001", "11011"]
//	fit = "exact"
func readPatternFile(path string) (config.PatternConfig, error) {
	var pc config.PatternConfig
	if _, err := toml.DecodeFile(path, &pc); err != nil {
		return pc, fmt.Errorf("read pattern file: %w", err)
	}
	return pc, nil
}

func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, f generateFlags) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(ctx, f.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	m := result.Maze
	prog.done(fmt.Sprintf("Carved %dx%d maze", m.Width, m.Height))
	logger.Info("maze", "seed", m.Seed, "strategy", m.Strategy, "start", m.Start, "carved", m.Carved)
	if result.PatternSkipped {
		logger.Warn("maze too small for the pattern, skipping it",
			"min", fmt.Sprintf("%dx%d", opts.MinPatternWidth, opts.MinPatternHeight))
	}
	printStats(c.errOut, m.Carved, m.Visited, result.Stats.Reserved, result.CacheInfo.MazeHit)

	if err := c.writeArtifacts(result.Artifacts, opts.Formats, f.output, "maze"); err != nil {
		return err
	}

	if f.save {
		st, err := c.newStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(ctx, m); err != nil {
			return fmt.Errorf("save maze: %w", err)
		}
		printSuccess(c.errOut, "Saved maze %s", m.ID)
	}
	return nil
}

// =============================================================================
// Output
// =============================================================================

// textFormats may be written to stdout.
var textFormats = map[string]bool{
	pipeline.FormatText: true,
	pipeline.FormatHex:  true,
	pipeline.FormatJSON: true,
	pipeline.FormatDOT:  true,
}

// writeArtifacts writes a single text artifact to stdout when no output is
// given, and everything else to files named after output (or fallback).
func (c *CLI) writeArtifacts(artifacts map[string][]byte, formats []string, output, fallback string) error {
	if output == "" && len(formats) == 1 && textFormats[formats[0]] {
		_, err := c.out.Write(artifacts[formats[0]])
		return err
	}

	if len(formats) == 1 && output != "" {
		return c.writeFile(output, artifacts[formats[0]])
	}

	base := basePath(output, fallback)
	for _, format := range formats {
		if err := c.writeFile(base+pipeline.FormatExtensions[format], artifacts[format]); err != nil {
			return err
		}
	}
	return nil
}

func (c *CLI) writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	printFile(c.errOut, path)
	return nil
}

// basePath strips a known format extension from output; an empty output
// falls back to fallback with its extension stripped.
func basePath(output, fallback string) string {
	if output == "" {
		return strings.TrimSuffix(fallback, filepath.Ext(fallback))
	}
	ext := filepath.Ext(output)
	for _, known := range pipeline.FormatExtensions {
		if ext == known {
			return strings.TrimSuffix(output, ext)
		}
	}
	return output
}
