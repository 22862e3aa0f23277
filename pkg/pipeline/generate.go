package pipeline

import (
	"context"

	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/core/topology"
	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// Generated is the output of the generate stage.
type Generated struct {
	Maze      *maze.Maze
	Grid      *grid.Grid
	Reserved  pattern.Reserved
	Placement pattern.Placement
	Report    topology.Report
}

// Generate builds a grid, reserves the pattern and carves the maze.
// Options must already be validated.
func Generate(ctx context.Context, opts Options) (*Generated, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := grid.New(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}

	var seed uint64
	if opts.Seed != nil {
		seed = *opts.Seed
	} else {
		seed = backtrack.NewSeed()
	}

	var (
		placement = pattern.Placement{Skipped: true}
		reserved  pattern.Reserved
	)
	if opts.HasPattern() {
		placement = pattern.Layout(opts.Width, opts.Height, opts.bitmap, opts.MinPatternWidth, opts.MinPatternHeight)
		reserved = pattern.Compute(opts.Width, opts.Height, opts.bitmap, opts.MinPatternWidth, opts.MinPatternHeight)
		pattern.Apply(g, reserved)
	}

	gen := backtrack.New(backtrack.NewRand(seed),
		backtrack.WithStrategy(opts.strategy),
		backtrack.WithMaxRecursionDepth(opts.MaxRecursionDepth))
	res, err := gen.Run(g, reserved)
	if err != nil {
		return nil, err
	}

	m := maze.New(g, reserved, maze.Meta{
		Seed:           seed,
		Strategy:       opts.strategy,
		Pattern:        opts.Pattern,
		PatternSkipped: opts.HasPattern() && placement.Skipped,
	}, res)

	return &Generated{
		Maze:      m,
		Grid:      g,
		Reserved:  reserved,
		Placement: placement,
		Report:    topology.Analyze(g, reserved),
	}, nil
}

// FromMaze rebuilds the generate-stage output of a stored document.
func FromMaze(m *maze.Maze) (*Generated, error) {
	g, err := m.Grid()
	if err != nil {
		return nil, err
	}
	reserved := m.ReservedSet()
	return &Generated{
		Maze:      m,
		Grid:      g,
		Reserved:  reserved,
		Placement: pattern.Placement{Skipped: reserved.Len() == 0},
		Report:    topology.Analyze(g, reserved),
	}, nil
}
