package pattern

import (
	"slices"
	"testing"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

func TestComputeTooSmall(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"3x3", 3, 3},
		{"narrow", 6, 20},
		{"short", 20, 4},
		{"1x1", 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.w, tt.h, Glyph42(), DefaultMinWidth, 5)
			if r.Len() != 0 {
				t.Errorf("Compute(%d, %d) reserved %d cells, want 0", tt.w, tt.h, r.Len())
			}
			if p := Layout(tt.w, tt.h, Glyph42(), DefaultMinWidth, 5); !p.Skipped {
				t.Errorf("Layout(%d, %d).Skipped = false, want true", tt.w, tt.h)
			}
		})
	}
}

func TestComputeRaggedBitmap(t *testing.T) {
	bm := Bitmap{{1, 1, 1}, {1}, {1, 1, 1}}
	if p := Layout(10, 10, bm, 3, 3); !p.Skipped {
		t.Errorf("Layout = %+v, want skipped", p)
	}
	if r := Compute(10, 10, bm, 3, 3); r.Len() != 0 {
		t.Errorf("Compute reserved %d cells from a ragged bitmap, want 0", r.Len())
	}
}

func TestComputeUnscaled(t *testing.T) {
	bm := Glyph42()
	p := Layout(20, 10, bm, DefaultMinWidth, 5)
	if p.Skipped || p.ScaleX != 1 || p.ScaleY != 1 {
		t.Fatalf("Layout = %+v, want unscaled placement", p)
	}
	if p.Origin != (grid.Point{X: 3, Y: 2}) || p.Width != 13 || p.Height != 5 {
		t.Fatalf("Layout = %+v, want 13x5 at (3,2)", p)
	}

	r := Compute(20, 10, bm, DefaultMinWidth, 5)
	if r.Len() != countOnes(bm) {
		t.Fatalf("reserved %d cells, want %d", r.Len(), countOnes(bm))
	}
	for y := range bm.Height() {
		for x := range bm.Width() {
			pt := grid.Point{X: 3 + x, Y: 2 + y}
			if r.Has(pt) != bm.Set(x, y) {
				t.Errorf("Has(%v) = %v, want %v", pt, r.Has(pt), bm.Set(x, y))
			}
		}
	}
}

func TestComputeScaled(t *testing.T) {
	bm := Glyph42()
	p := Layout(7, 5, bm, DefaultMinWidth, 5)
	if p.Skipped {
		t.Fatal("7x5 grid skipped, want scaled placement")
	}
	if p.Width != 7 || p.Height != 5 || p.Origin != (grid.Point{}) {
		t.Errorf("Layout = %+v, want 7x5 at origin", p)
	}

	r := Compute(7, 5, bm, DefaultMinWidth, 5)
	if r.Len() == 0 || r.Len() > countOnes(bm) {
		t.Fatalf("reserved %d cells, want 1..%d", r.Len(), countOnes(bm))
	}
	r.Each(func(pt grid.Point) {
		if pt.X < 0 || pt.X >= 7 || pt.Y < 0 || pt.Y >= 5 {
			t.Errorf("reserved point %v outside 7x5 grid", pt)
		}
	})
}

func TestComputeDeterministic(t *testing.T) {
	a := Compute(9, 6, Glyph42(), DefaultMinWidth, 5).Points()
	b := Compute(9, 6, Glyph42(), DefaultMinWidth, 5).Points()
	if !slices.Equal(a, b) {
		t.Errorf("Compute not deterministic:\n%v\n%v", a, b)
	}
}

func TestComputeDropsOutOfBounds(t *testing.T) {
	// Four columns squeezed onto one: column 3 maps to x=1 and falls off.
	bm := Bitmap{{1, 1, 1, 1}}
	r := Compute(1, 1, bm, 1, 1)
	if got := r.Points(); !slices.Equal(got, []grid.Point{{X: 0, Y: 0}}) {
		t.Errorf("Points() = %v, want [(0,0)]", got)
	}
}

func TestComputeRoundsHalfToEven(t *testing.T) {
	// Scale 0.5: column 1 maps to 0.5 and column 3 to 1.5; ties go to the even side.
	bm := Bitmap{{0, 1, 0, 1}}
	r := Compute(2, 1, bm, 1, 1)
	// 0.5 rounds to 0, 1.5 rounds to 2 and falls off the grid.
	if got := r.Points(); !slices.Equal(got, []grid.Point{{X: 0, Y: 0}}) {
		t.Errorf("Points() = %v, want [(0,0)]", got)
	}
}

func TestFitExact(t *testing.T) {
	bm := Glyph42()
	minW, minH := FitExact.Thresholds(bm)
	if minW != 13 || minH != 5 {
		t.Fatalf("FitExact thresholds = %d,%d, want 13,5", minW, minH)
	}
	if r := Compute(12, 10, bm, minW, minH); r.Len() != 0 {
		t.Errorf("exact fit on 12x10 reserved %d cells, want 0", r.Len())
	}
	if r := Compute(13, 5, bm, minW, minH); r.Len() != countOnes(bm) {
		t.Errorf("exact fit on 13x5 reserved %d cells, want %d", r.Len(), countOnes(bm))
	}

	minW, minH = FitScale.Thresholds(bm)
	if minW != DefaultMinWidth || minH != 5 {
		t.Errorf("FitScale thresholds = %d,%d, want %d,5", minW, minH, DefaultMinWidth)
	}
}

func TestParseFit(t *testing.T) {
	for in, want := range map[string]Fit{"": FitScale, "scale": FitScale, "exact": FitExact} {
		got, err := ParseFit(in)
		if err != nil || got != want {
			t.Errorf("ParseFit(%q) = %q, %v, want %q", in, got, err, want)
		}
	}
	if _, err := ParseFit("stretch"); !errors.Is(err, errors.ErrCodeInvalidPattern) {
		t.Errorf("ParseFit(stretch) error = %v, want %s", err, errors.ErrCodeInvalidPattern)
	}
}

func TestApply(t *testing.T) {
	g, err := grid.New(20, 10)
	if err != nil {
		t.Fatal(err)
	}
	// Open a wall first so Apply has something to restore.
	g.RemoveWall(grid.Point{X: 3, Y: 2}, grid.Point{X: 4, Y: 2}, grid.East)

	r := Compute(20, 10, Glyph42(), DefaultMinWidth, 5)
	Apply(g, r)

	g.Each(func(p grid.Point, c *grid.Cell) {
		if r.Has(p) {
			if !c.Visited || !c.Sealed() {
				t.Errorf("reserved cell %v = %+v, want visited and sealed", p, *c)
			}
		} else if c.Visited {
			t.Errorf("free cell %v marked visited", p)
		}
	})
}

func TestReservedZeroValue(t *testing.T) {
	var r Reserved
	if r.Len() != 0 || r.Has(grid.Point{}) || len(r.Points()) != 0 {
		t.Error("zero Reserved is not empty")
	}
	r.Each(func(grid.Point) { t.Error("Each visited a point of the empty set") })
}

func TestReservedPointsSorted(t *testing.T) {
	r := NewReserved(grid.Point{X: 2, Y: 1}, grid.Point{X: 0, Y: 1}, grid.Point{X: 5, Y: 0}, grid.Point{X: 0, Y: 1})
	want := []grid.Point{{X: 5, Y: 0}, {X: 0, Y: 1}, {X: 2, Y: 1}}
	if got := r.Points(); !slices.Equal(got, want) {
		t.Errorf("Points() = %v, want %v", got, want)
	}
}
