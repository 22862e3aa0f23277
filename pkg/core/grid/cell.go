package grid

import "math/bits"

// Walls is a set of present walls, one bit per [Direction].
type Walls uint8

// AllWalls has every wall present. NoWalls has none.
const (
	AllWalls Walls = 0xF
	NoWalls  Walls = 0
)

// Has reports whether the wall in direction d is present.
func (w Walls) Has(d Direction) bool { return w&d.Bit() != 0 }

// With returns w with the wall in direction d present.
func (w Walls) With(d Direction) Walls { return w | d.Bit() }

// Without returns w with the wall in direction d removed.
func (w Walls) Without(d Direction) Walls { return w &^ d.Bit() }

// Count returns the number of walls present.
func (w Walls) Count() int { return bits.OnesCount8(uint8(w & AllWalls)) }

// Cell is a single maze cell.
type Cell struct {
	Visited bool
	Walls   Walls
}

// NewCell returns an unvisited cell with all four walls.
func NewCell() Cell { return Cell{Walls: AllWalls} }

// Sealed reports whether all four walls are present.
func (c Cell) Sealed() bool { return c.Walls&AllWalls == AllWalls }

// Seal marks the cell visited and restores all four walls.
func (c *Cell) Seal() {
	c.Visited = true
	c.Walls = AllWalls
}
