package grid

import "fmt"

// Direction is one of the four cardinal directions.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all four directions in bit order.
var Directions = [4]Direction{North, East, South, West}

var (
	directionNames = [4]string{"N", "E", "S", "W"}
	directionDX    = [4]int{0, 1, 0, -1}
	directionDY    = [4]int{-1, 0, 1, 0}
)

// Opposite returns the direction pointing back: N↔S, E↔W.
func (d Direction) Opposite() Direction { return (d + 2) % 4 }

// Delta returns the coordinate offset of one step in direction d.
// North decreases y.
func (d Direction) Delta() (dx, dy int) { return directionDX[d], directionDY[d] }

// Bit returns the wall bit that represents d.
func (d Direction) Bit() Walls { return 1 << d }

func (d Direction) String() string {
	if d > West {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Point is an (x, y) grid coordinate.
type Point struct {
	X int `json:"x" bson:"x"`
	Y int `json:"y" bson:"y"`
}

// Step returns the point one cell away in direction d.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }
