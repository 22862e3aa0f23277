package grid

import (
	"fmt"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// Grid is a fixed-size rectangle of cells stored in row-major order.
//
// The zero value is not usable - use [New].
type Grid struct {
	width, height int
	cells         []Cell
}

// New creates a width × height grid with every wall present.
// It returns an INVALID_DIMENSIONS error if either side is not positive.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidDimensions,
			"maze dimensions must be positive, got %dx%d", width, height)
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = NewCell()
	}
	return &Grid{width: width, height: height, cells: cells}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the total number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// InBounds reports whether (x, y) lies inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Contains reports whether p lies inside the grid.
func (g *Grid) Contains(p Point) bool { return g.InBounds(p.X, p.Y) }

// At returns the cell at p. It panics if p is out of bounds.
func (g *Grid) At(p Point) *Cell {
	if !g.Contains(p) {
		panic(fmt.Sprintf("grid: point %v out of bounds %dx%d", p, g.width, g.height))
	}
	return &g.cells[p.Y*g.width+p.X]
}

// Neighbor returns the point adjacent to p in direction d and whether it is
// inside the grid.
func (g *Grid) Neighbor(p Point, d Direction) (Point, bool) {
	n := p.Step(d)
	return n, g.Contains(n)
}

// RemoveWall opens the wall between p1 and its neighbour p2 in direction d,
// clearing d on p1 and the opposite direction on p2.
// It panics if p2 is not the neighbour of p1 in direction d.
func (g *Grid) RemoveWall(p1, p2 Point, d Direction) {
	if p1.Step(d) != p2 {
		panic(fmt.Sprintf("grid: %v is not the %v neighbour of %v", p2, d, p1))
	}
	a, b := g.At(p1), g.At(p2)
	a.Walls = a.Walls.Without(d)
	b.Walls = b.Walls.Without(d.Opposite())
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(p Point, c *Cell)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(Point{X: x, Y: y}, &g.cells[y*g.width+x])
		}
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &Grid{width: g.width, height: g.height, cells: cells}
}
