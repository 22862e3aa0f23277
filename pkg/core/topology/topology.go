// Package topology checks that a carved grid is a perfect maze.
//
// [Analyze] treats free cells as nodes and open walls as edges. A maze is
// perfect when the walls are consistent, the outer border is closed, every
// free cell was visited and the edges form a single tree.
package topology

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
)

// Report describes the structure of a grid.
type Report struct {
	Cells      int `json:"cells"`
	Reserved   int `json:"reserved"`
	Visited    int `json:"visited"`   // free cells marked visited
	Unvisited  int `json:"unvisited"` // free cells never reached
	Edges      int `json:"edges"`     // open walls between two free cells
	Components int `json:"components"`

	Symmetric    bool `json:"symmetric"`     // every open wall is open on both sides
	BorderClosed bool `json:"border_closed"` // no wall on the outer edge is open
	Acyclic      bool `json:"acyclic"`
}

// Perfect reports whether the grid is a single spanning tree over all free
// cells. A grid made only of reserved cells is trivially perfect.
func (r Report) Perfect() bool {
	connected := r.Components == 1 || r.Reserved == r.Cells
	return r.Symmetric && r.BorderClosed && r.Acyclic && connected && r.Unvisited == 0
}

// Analyze inspects g. Reserved cells are excluded from the graph; an open
// wall leading into one counts as a symmetry violation.
func Analyze(g *grid.Grid, reserved pattern.Reserved) Report {
	r := Report{Cells: g.Len(), Symmetric: true, BorderClosed: true}

	// Nodes are free cells that were visited or have an open wall.
	nodes := mapset.New[grid.Point]()
	g.Each(func(p grid.Point, c *grid.Cell) {
		if reserved.Has(p) {
			r.Reserved++
			return
		}
		if c.Visited {
			r.Visited++
		} else {
			r.Unvisited++
		}
		if c.Visited || !c.Sealed() {
			nodes.Put(p)
		}

		for _, d := range grid.Directions {
			if c.Walls.Has(d) {
				continue
			}
			n, ok := g.Neighbor(p, d)
			if !ok {
				r.BorderClosed = false
				continue
			}
			if g.At(n).Walls.Has(d.Opposite()) || reserved.Has(n) {
				r.Symmetric = false
				continue
			}
			// Count each edge once, from its west or north end.
			if d == grid.East || d == grid.South {
				r.Edges++
			}
		}
	})

	seen := mapset.New[grid.Point]()
	nodes.Each(func(p grid.Point) {
		if seen.Has(p) {
			return
		}
		r.Components++
		flood(g, reserved, p, seen)
	})

	r.Acyclic = r.Edges == nodes.Size()-r.Components
	return r
}

// flood marks every node reachable from start through open, symmetric walls.
func flood(g *grid.Grid, reserved pattern.Reserved, start grid.Point, seen mapset.Set[grid.Point]) {
	seen.Put(start)
	queue := []grid.Point{start}
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		c := g.At(p)
		for _, d := range grid.Directions {
			if c.Walls.Has(d) {
				continue
			}
			n, ok := g.Neighbor(p, d)
			if !ok || reserved.Has(n) || seen.Has(n) || g.At(n).Walls.Has(d.Opposite()) {
				continue
			}
			seen.Put(n)
			queue = append(queue, n)
		}
	}
}
