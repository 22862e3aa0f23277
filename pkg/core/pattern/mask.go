package pattern

import (
	"math"
	"slices"

	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// DefaultMinWidth is the narrowest grid that still receives a scaled pattern.
const DefaultMinWidth = 7

// Fit selects the minimum grid size a pattern needs.
type Fit string

const (
	// FitScale compresses the bitmap horizontally down to DefaultMinWidth columns.
	FitScale Fit = "scale"
	// FitExact only places the bitmap when it fits unscaled.
	FitExact Fit = "exact"
)

// ParseFit parses a fit policy name. The empty string means FitScale.
func ParseFit(s string) (Fit, error) {
	switch Fit(s) {
	case "", FitScale:
		return FitScale, nil
	case FitExact:
		return FitExact, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidPattern, "invalid pattern fit %q (must be 'scale' or 'exact')", s)
	}
}

// Thresholds returns the minimum grid width and height for placing bm.
func (f Fit) Thresholds(bm Bitmap) (minWidth, minHeight int) {
	if f == FitExact {
		return bm.Width(), bm.Height()
	}
	return min(DefaultMinWidth, bm.Width()), bm.Height()
}

// Placement describes where a bitmap lands on a grid.
type Placement struct {
	Skipped bool       // grid below the minimum size; nothing is reserved
	ScaleX  float64    // horizontal scale, at most 1
	ScaleY  float64    // vertical scale, at most 1
	Width   int        // scaled pattern width in cells
	Height  int        // scaled pattern height in cells
	Origin  grid.Point // top-left corner of the scaled pattern
}

// Layout computes the placement of bm on a gridWidth × gridHeight grid.
// A bitmap that fails [Bitmap.Validate] is skipped like one that does not fit.
func Layout(gridWidth, gridHeight int, bm Bitmap, minWidth, minHeight int) Placement {
	bw, bh := bm.Width(), bm.Height()
	if bm.Validate() != nil || gridWidth < minWidth || gridHeight < minHeight {
		return Placement{Skipped: true}
	}

	sx := min(1, float64(gridWidth)/float64(bw))
	sy := min(1, float64(gridHeight)/float64(bh))
	pw := max(1, int(math.RoundToEven(float64(bw)*sx)))
	ph := max(1, int(math.RoundToEven(float64(bh)*sy)))

	// pw <= gridWidth and ph <= gridHeight, so the division never sees a negative.
	return Placement{
		ScaleX: sx,
		ScaleY: sy,
		Width:  pw,
		Height: ph,
		Origin: grid.Point{X: (gridWidth - pw) / 2, Y: (gridHeight - ph) / 2},
	}
}

// Map returns the grid coordinate of bitmap coordinate (ox, oy).
// The result may lie outside the grid.
func (p Placement) Map(ox, oy int) grid.Point {
	return grid.Point{
		X: p.Origin.X + int(math.RoundToEven(float64(ox)*p.ScaleX)),
		Y: p.Origin.Y + int(math.RoundToEven(float64(oy)*p.ScaleY)),
	}
}

// Compute returns the grid coordinates covered by bm on a gridWidth ×
// gridHeight grid. The result is empty when the grid is below
// minWidth × minHeight. Mapped points outside the grid are dropped.
func Compute(gridWidth, gridHeight int, bm Bitmap, minWidth, minHeight int) Reserved {
	p := Layout(gridWidth, gridHeight, bm, minWidth, minHeight)
	if p.Skipped {
		return Reserved{}
	}

	set := mapset.New[grid.Point]()
	for oy := 0; oy < bm.Height(); oy++ {
		for ox := 0; ox < bm.Width(); ox++ {
			if !bm.Set(ox, oy) {
				continue
			}
			pt := p.Map(ox, oy)
			if pt.X < 0 || pt.X >= gridWidth || pt.Y < 0 || pt.Y >= gridHeight {
				continue
			}
			set.Put(pt)
		}
	}
	return Reserved{set: &set}
}

// Apply seals every reserved cell of g: visited, all four walls present.
// Reserved points must lie inside g.
func Apply(g *grid.Grid, r Reserved) {
	r.Each(func(p grid.Point) {
		g.At(p).Seal()
	})
}

// Reserved is an immutable set of reserved grid coordinates.
// The zero value is the empty set.
type Reserved struct {
	set *mapset.Set[grid.Point]
}

// NewReserved builds a reserved set from explicit points.
func NewReserved(points ...grid.Point) Reserved {
	if len(points) == 0 {
		return Reserved{}
	}
	set := mapset.New[grid.Point]()
	for _, p := range points {
		set.Put(p)
	}
	return Reserved{set: &set}
}

// Has reports whether p is reserved.
func (r Reserved) Has(p grid.Point) bool {
	return r.set != nil && r.set.Has(p)
}

// Len returns the number of reserved points.
func (r Reserved) Len() int {
	if r.set == nil {
		return 0
	}
	return r.set.Size()
}

// Each calls fn for every reserved point in unspecified order.
func (r Reserved) Each(fn func(p grid.Point)) {
	if r.set == nil {
		return
	}
	r.set.Each(fn)
}

// Points returns the reserved points sorted in row-major order.
func (r Reserved) Points() []grid.Point {
	pts := make([]grid.Point, 0, r.Len())
	r.Each(func(p grid.Point) { pts = append(pts, p) })
	slices.SortFunc(pts, func(a, b grid.Point) int {
		if a.Y != b.Y {
			return a.Y - b.Y
		}
		return a.X - b.X
	})
	return pts
}
