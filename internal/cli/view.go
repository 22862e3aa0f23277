package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/pipeline"
)

func (c *CLI) viewCommand() *cobra.Command {
	var f generateFlags

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Browse mazes interactively",
		Long: `Browse mazes in the terminal.

Keys: r new seed · s toggle strategy · p toggle pattern · x toggle hex · q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := c.generateOptions(cmd, f)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer runner.Close()

			// The viewer owns the terminal; keep log lines out of it.
			runner.Logger = log.NewWithOptions(io.Discard, log.Options{})

			m := newViewModel(cmd.Context(), runner, opts)
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&f.width, "width", "W", 0, "maze width in cells")
	cmd.Flags().IntVarP(&f.height, "height", "H", 0, "maze height in cells")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "initial seed")
	cmd.Flags().StringVar(&f.glyphs, "glyphs", "", "text glyphs: ascii (default), unicode")

	return cmd
}

// =============================================================================
// viewModel - interactive maze viewer
// =============================================================================

type generatedMsg struct {
	result *pipeline.Result
	err    error
}

type viewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	base   pipeline.Options

	seed      uint64
	strategy  backtrack.Strategy
	pattern   bool
	hex       bool
	busy      bool
	result    *pipeline.Result
	err       error
	generated int
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, base pipeline.Options) viewModel {
	seed := backtrack.NewSeed()
	if base.Seed != nil {
		seed = *base.Seed
	}
	strategy, _ := backtrack.ParseStrategy(base.Strategy)
	return viewModel{
		ctx:      ctx,
		runner:   runner,
		base:     base,
		seed:     seed,
		strategy: strategy,
		pattern:  base.Pattern != maze.PatternNone,
	}
}

// options returns the pipeline options for the current toggles.
func (m viewModel) options() pipeline.Options {
	seed := m.seed
	return pipeline.Options{
		Width:       m.base.Width,
		Height:      m.base.Height,
		Seed:        &seed,
		Strategy:    m.strategy.String(),
		Pattern:     m.patternName(),
		PatternRows: m.base.PatternRows,
		PatternFit:  m.base.PatternFit,
		Glyphs:      m.base.Glyphs,
		Formats:     []string{pipeline.FormatText, pipeline.FormatHex},
	}
}

func (m viewModel) patternName() string {
	if !m.pattern {
		return maze.PatternNone
	}
	if m.base.Pattern == maze.PatternNone {
		return maze.Pattern42
	}
	return m.base.Pattern
}

func (m viewModel) generate() tea.Cmd {
	opts := m.options()
	return func() tea.Msg {
		res, err := m.runner.Execute(m.ctx, opts)
		return generatedMsg{result: res, err: err}
	}
}

func (m viewModel) Init() tea.Cmd {
	return m.generate()
}

func (m viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.busy = false
		m.result, m.err = msg.result, msg.err
		if msg.err == nil {
			m.generated++
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "x":
			m.hex = !m.hex
			return m, nil
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "r":
			m.seed = backtrack.NewSeed()
		case "s":
			if m.strategy == backtrack.Iterative {
				m.strategy = backtrack.Recursive
			} else {
				m.strategy = backtrack.Iterative
			}
		case "p":
			m.pattern = !m.pattern
		default:
			return m, nil
		}
		m.busy = true
		return m, m.generate()
	}
	return m, nil
}

func (m viewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("perfectmaze"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(fmt.Sprintf("%dx%d · seed %d · %s · pattern %s",
		m.base.Width, m.base.Height, m.seed, m.strategy, m.patternName())))
	b.WriteString("\n\n")

	switch {
	case m.err != nil:
		b.WriteString(StyleError.Render(iconError + " " + m.err.Error()))
		b.WriteString("\n")
	case m.result == nil:
		b.WriteString(StyleDim.Render("carving..."))
		b.WriteString("\n")
	default:
		format := pipeline.FormatText
		if m.hex {
			format = pipeline.FormatHex
		}
		b.Write(m.result.Artifacts[format])
		b.WriteString("\n")
		status := fmt.Sprintf("%d walls carved · %d cells visited", m.result.Stats.Carved, m.result.Stats.Visited)
		if m.result.PatternSkipped {
			status += " · " + StyleWarning.Render("too small for the pattern")
		}
		b.WriteString(StyleDim.Render(status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(StyleDim.Render("r new seed · s strategy · p pattern · x hex · q quit"))
	return b.String()
}
