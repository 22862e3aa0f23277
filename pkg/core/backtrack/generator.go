package backtrack

import (
	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// DefaultMaxRecursionDepth is the largest free-cell count the recursive
// strategy accepts.
const DefaultMaxRecursionDepth = 1 << 16

// Generator carves mazes. A Generator is not safe for concurrent use because
// it shares its Rand between runs.
type Generator struct {
	rng      Rand
	strategy Strategy
	maxDepth int
}

// Option configures a Generator.
type Option func(*Generator)

// WithStrategy selects the traversal strategy.
func WithStrategy(s Strategy) Option {
	return func(g *Generator) { g.strategy = s }
}

// WithMaxRecursionDepth sets the depth guard of the recursive strategy.
// Values <= 0 restore the default.
func WithMaxRecursionDepth(n int) Option {
	return func(g *Generator) {
		if n <= 0 {
			n = DefaultMaxRecursionDepth
		}
		g.maxDepth = n
	}
}

// New returns an iterative generator drawing from rng.
func New(rng Rand, opts ...Option) *Generator {
	g := &Generator{rng: rng, strategy: Iterative, maxDepth: DefaultMaxRecursionDepth}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Strategy returns the configured strategy.
func (gen *Generator) Strategy() Strategy { return gen.strategy }

// Result summarizes a run.
type Result struct {
	Start   grid.Point // first cell visited
	Visited int        // cells visited by this run, start included
	Carved  int        // walls removed
	Empty   bool       // no free cell existed; the grid was left untouched
}

// Run carves g from a uniformly chosen free cell. Cells in reserved are never
// entered. A grid without free cells is left untouched and reported as Empty.
func (gen *Generator) Run(g *grid.Grid, reserved pattern.Reserved) (Result, error) {
	free := g.Len() - countReserved(g, reserved)
	if free == 0 {
		return Result{Empty: true}, nil
	}
	if err := gen.checkDepth(free); err != nil {
		return Result{}, err
	}

	// k-th free cell in row-major order.
	k := gen.rng.IntN(free)
	var start grid.Point
	g.Each(func(p grid.Point, _ *grid.Cell) {
		if reserved.Has(p) {
			return
		}
		if k == 0 {
			start = p
		}
		k--
	})
	return gen.carve(g, reserved, start), nil
}

// RunFrom carves g starting at start. It returns an INVALID_START error if
// start is outside g or reserved.
func (gen *Generator) RunFrom(g *grid.Grid, reserved pattern.Reserved, start grid.Point) (Result, error) {
	if !g.Contains(start) {
		return Result{}, errors.New(errors.ErrCodeInvalidStart,
			"start %v outside %dx%d grid", start, g.Width(), g.Height())
	}
	if reserved.Has(start) {
		return Result{}, errors.New(errors.ErrCodeInvalidStart, "start %v is reserved", start)
	}
	if err := gen.checkDepth(g.Len() - countReserved(g, reserved)); err != nil {
		return Result{}, err
	}
	return gen.carve(g, reserved, start), nil
}

func (gen *Generator) checkDepth(free int) error {
	if gen.strategy == Recursive && free > gen.maxDepth {
		return errors.New(errors.ErrCodeRecursionLimit,
			"%d free cells exceed the recursion limit of %d; use the iterative strategy", free, gen.maxDepth)
	}
	return nil
}

func (gen *Generator) carve(g *grid.Grid, reserved pattern.Reserved, start grid.Point) Result {
	w := walker{g: g, reserved: reserved, rng: gen.rng}
	switch gen.strategy {
	case Recursive:
		w.visit(start)
		w.recurse(start)
	default:
		w.iterate(start)
	}
	return Result{Start: start, Visited: w.visited, Carved: w.carved}
}

// countReserved counts reserved points that lie on g.
func countReserved(g *grid.Grid, reserved pattern.Reserved) int {
	n := 0
	reserved.Each(func(p grid.Point) {
		if g.Contains(p) {
			n++
		}
	})
	return n
}

type walker struct {
	g        *grid.Grid
	reserved pattern.Reserved
	rng      Rand

	visited int
	carved  int
}

func (w *walker) visit(p grid.Point) {
	w.g.At(p).Visited = true
	w.visited++
}

func (w *walker) shuffled() [4]grid.Direction {
	dirs := grid.Directions
	w.rng.Shuffle(len(dirs), func(i, j int) { dirs[i], dirs[j] = dirs[j], dirs[i] })
	return dirs
}

// open reports whether n is an unvisited free cell.
func (w *walker) open(n grid.Point, ok bool) bool {
	return ok && !w.reserved.Has(n) && !w.g.At(n).Visited
}

func (w *walker) recurse(p grid.Point) {
	for _, d := range w.shuffled() {
		n, ok := w.g.Neighbor(p, d)
		if !w.open(n, ok) {
			continue
		}
		w.g.RemoveWall(p, n, d)
		w.carved++
		w.visit(n)
		w.recurse(n)
	}
}

type frame struct {
	p    grid.Point
	dirs [4]grid.Direction
	next int
}

func (w *walker) iterate(start grid.Point) {
	w.visit(start)
	stack := []frame{{p: start, dirs: w.shuffled()}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := top.dirs[top.next]
		top.next++

		n, ok := w.g.Neighbor(top.p, d)
		if !w.open(n, ok) {
			continue
		}
		w.g.RemoveWall(top.p, n, d)
		w.carved++
		w.visit(n)
		stack = append(stack, frame{p: n, dirs: w.shuffled()})
	}
}
