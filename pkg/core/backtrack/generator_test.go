package backtrack

import (
	"testing"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/core/topology"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

func newGrid(t *testing.T, w, h int) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func sameWalls(a, b *grid.Grid) bool {
	same := true
	a.Each(func(p grid.Point, c *grid.Cell) {
		if *b.At(p) != *c {
			same = false
		}
	})
	return same
}

// lastRand always picks the largest index and never shuffles, so the walk
// tries directions in N, E, S, W order.
type lastRand struct{}

func (lastRand) IntN(n int) int              { return n - 1 }
func (lastRand) Shuffle(int, func(i, j int)) {}

func TestRun5x5(t *testing.T) {
	for _, s := range Strategies {
		t.Run(string(s), func(t *testing.T) {
			g := newGrid(t, 5, 5)
			res, err := New(NewRand(42), WithStrategy(s)).Run(g, pattern.Reserved{})
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if res.Carved != 24 || res.Visited != 25 {
				t.Errorf("carved %d visited %d, want 24 and 25", res.Carved, res.Visited)
			}
			if r := topology.Analyze(g, pattern.Reserved{}); !r.Perfect() {
				t.Errorf("topology = %+v, want perfect", r)
			}
		})
	}
}

func TestRunSmallGridSkipsPattern(t *testing.T) {
	g := newGrid(t, 3, 3)
	res := pattern.Compute(3, 3, pattern.Glyph42(), pattern.DefaultMinWidth, 5)
	if res.Len() != 0 {
		t.Fatalf("reserved %d cells on 3x3, want 0", res.Len())
	}
	pattern.Apply(g, res)

	out, err := New(NewRand(1)).Run(g, res)
	if err != nil {
		t.Fatal(err)
	}
	if out.Visited != 9 || out.Carved != 8 {
		t.Errorf("visited %d carved %d, want 9 and 8", out.Visited, out.Carved)
	}
	if r := topology.Analyze(g, res); r.Components != 1 || !r.Perfect() {
		t.Errorf("topology = %+v, want one perfect component", r)
	}
}

func stripReserved(g *grid.Grid) pattern.Reserved {
	var pts []grid.Point
	for y := range g.Height() {
		for x := 4; x <= 6; x++ {
			pts = append(pts, grid.Point{X: x, Y: y})
		}
	}
	return pattern.NewReserved(pts...)
}

func TestRunFromSplitGrid(t *testing.T) {
	for _, s := range Strategies {
		t.Run(string(s), func(t *testing.T) {
			g := newGrid(t, 10, 10)
			res := stripReserved(g)
			pattern.Apply(g, res)

			out, err := New(NewRand(9), WithStrategy(s)).RunFrom(g, res, grid.Point{X: 0, Y: 0})
			if err != nil {
				t.Fatal(err)
			}
			if out.Visited != 40 || out.Carved != 39 {
				t.Errorf("visited %d carved %d, want 40 and 39", out.Visited, out.Carved)
			}
			g.Each(func(p grid.Point, c *grid.Cell) {
				switch {
				case p.X < 4 && !c.Visited:
					t.Errorf("left cell %v unvisited", p)
				case p.X > 6 && c.Visited:
					t.Errorf("right cell %v visited", p)
				case p.X > 6 && !c.Sealed():
					t.Errorf("right cell %v carved", p)
				}
			})
		})
	}
}

func TestRunSplitGridRandomStart(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		g := newGrid(t, 10, 10)
		res := stripReserved(g)
		pattern.Apply(g, res)

		out, err := New(NewRand(seed)).Run(g, res)
		if err != nil {
			t.Fatal(err)
		}
		if res.Has(out.Start) {
			t.Fatalf("seed %d: start %v is reserved", seed, out.Start)
		}
		want := 40
		if out.Start.X > 6 {
			want = 30
		}
		if out.Visited != want {
			t.Errorf("seed %d: start %v visited %d, want %d", seed, out.Start, out.Visited, want)
		}
	}
}

func TestStrategiesCarveSameMaze(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {1, 9}, {7, 5}, {16, 16}, {40, 11}}
	for _, sz := range sizes {
		for seed := uint64(1); seed <= 5; seed++ {
			a, b := newGrid(t, sz.w, sz.h), newGrid(t, sz.w, sz.h)
			ra, err := New(NewRand(seed), WithStrategy(Iterative)).Run(a, pattern.Reserved{})
			if err != nil {
				t.Fatal(err)
			}
			rb, err := New(NewRand(seed), WithStrategy(Recursive)).Run(b, pattern.Reserved{})
			if err != nil {
				t.Fatal(err)
			}
			if ra != rb || !sameWalls(a, b) {
				t.Errorf("%dx%d seed %d: strategies diverged (%+v vs %+v)", sz.w, sz.h, seed, ra, rb)
			}
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	a, b, c := newGrid(t, 10, 10), newGrid(t, 10, 10), newGrid(t, 10, 10)
	New(NewRand(5)).Run(a, pattern.Reserved{})
	New(NewRand(5)).Run(b, pattern.Reserved{})
	New(NewRand(6)).Run(c, pattern.Reserved{})
	if !sameWalls(a, b) {
		t.Error("same seed produced different mazes")
	}
	if sameWalls(a, c) {
		t.Error("different seeds produced the same 10x10 maze")
	}
}

func TestRecursionLimit(t *testing.T) {
	g := newGrid(t, 10, 10)
	_, err := New(NewRand(1), WithStrategy(Recursive), WithMaxRecursionDepth(50)).Run(g, pattern.Reserved{})
	if !errors.Is(err, errors.ErrCodeRecursionLimit) {
		t.Fatalf("Run() error = %v, want %s", err, errors.ErrCodeRecursionLimit)
	}
	g.Each(func(p grid.Point, c *grid.Cell) {
		if c.Visited || !c.Sealed() {
			t.Errorf("cell %v mutated by a refused run", p)
		}
	})

	// Reserved cells do not count against the guard.
	res := stripReserved(g)
	if _, err := New(NewRand(1), WithStrategy(Recursive), WithMaxRecursionDepth(70)).Run(g, res); err != nil {
		t.Errorf("70 free cells under a guard of 70: %v", err)
	}

	// The iterative strategy ignores the guard.
	if _, err := New(NewRand(1), WithMaxRecursionDepth(1)).Run(newGrid(t, 10, 10), pattern.Reserved{}); err != nil {
		t.Errorf("iterative run refused: %v", err)
	}
}

func TestRunAllReserved(t *testing.T) {
	g := newGrid(t, 2, 2)
	var pts []grid.Point
	g.Each(func(p grid.Point, _ *grid.Cell) { pts = append(pts, p) })
	res := pattern.NewReserved(pts...)

	out, err := New(NewRand(1)).Run(g, res)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Empty || out.Visited != 0 || out.Carved != 0 {
		t.Errorf("Result = %+v, want empty", out)
	}
}

func TestRunStartSelection(t *testing.T) {
	g := newGrid(t, 3, 1)
	res := pattern.NewReserved(grid.Point{X: 2, Y: 0})

	out, err := New(lastRand{}).Run(g, res)
	if err != nil {
		t.Fatal(err)
	}
	if out.Start != (grid.Point{X: 1, Y: 0}) {
		t.Errorf("start = %v, want (1,0), the last free cell", out.Start)
	}
	if out.Visited != 2 || out.Carved != 1 {
		t.Errorf("Result = %+v, want 2 visited and 1 carved", out)
	}
	if g.At(grid.Point{X: 1, Y: 0}).Walls.Has(grid.West) {
		t.Error("wall between (0,0) and (1,0) still present")
	}
	if !g.At(grid.Point{X: 2, Y: 0}).Sealed() {
		t.Error("reserved cell was carved")
	}
}

func TestRunFromInvalidStart(t *testing.T) {
	g := newGrid(t, 4, 4)
	res := pattern.NewReserved(grid.Point{X: 1, Y: 1})
	gen := New(NewRand(1))

	for _, start := range []grid.Point{{X: -1, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}, {X: 1, Y: 1}} {
		if _, err := gen.RunFrom(g, res, start); !errors.Is(err, errors.ErrCodeInvalidStart) {
			t.Errorf("RunFrom(%v) error = %v, want %s", start, err, errors.ErrCodeInvalidStart)
		}
	}
}

func TestRunLargeIterative(t *testing.T) {
	g := newGrid(t, 400, 300)
	out, err := New(NewRand(11)).Run(g, pattern.Reserved{})
	if err != nil {
		t.Fatal(err)
	}
	if out.Visited != g.Len() || out.Carved != g.Len()-1 {
		t.Errorf("Result = %+v, want a spanning tree over %d cells", out, g.Len())
	}
}
