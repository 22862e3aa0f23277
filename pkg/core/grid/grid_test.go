package grid

import (
	"testing"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

func TestNew(t *testing.T) {
	g, err := New(4, 3)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if g.Width() != 4 || g.Height() != 3 || g.Len() != 12 {
		t.Fatalf("size = %dx%d (%d cells), want 4x3 (12 cells)", g.Width(), g.Height(), g.Len())
	}

	g.Each(func(p Point, c *Cell) {
		if c.Visited {
			t.Errorf("cell %v visited on a fresh grid", p)
		}
		if !c.Sealed() {
			t.Errorf("cell %v walls = %04b, want all present", p, c.Walls)
		}
	})
}

func TestNewInvalidDimensions(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 3},
		{"zero height", 3, 0},
		{"negative width", -1, 3},
		{"negative height", 3, -7},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New(tt.w, tt.h)
			if err == nil {
				t.Fatalf("New(%d, %d) = %v, want error", tt.w, tt.h, g)
			}
			if !errors.Is(err, errors.ErrCodeInvalidDimensions) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestInBounds(t *testing.T) {
	g, _ := New(3, 2)
	tests := []struct {
		x, y int
		want bool
	}{
		{0, 0, true},
		{2, 1, true},
		{3, 0, false},
		{0, 2, false},
		{-1, 0, false},
		{0, -1, false},
	}
	for _, tt := range tests {
		if got := g.InBounds(tt.x, tt.y); got != tt.want {
			t.Errorf("InBounds(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	g, _ := New(2, 2)
	defer func() {
		if recover() == nil {
			t.Error("At() out of bounds should panic")
		}
	}()
	g.At(Point{X: 2, Y: 0})
}

func TestRemoveWallIsSymmetric(t *testing.T) {
	for _, d := range Directions {
		t.Run(d.String(), func(t *testing.T) {
			g, _ := New(3, 3)
			center := Point{X: 1, Y: 1}
			n, ok := g.Neighbor(center, d)
			if !ok {
				t.Fatalf("Neighbor(%v, %v) out of bounds", center, d)
			}

			g.RemoveWall(center, n, d)

			if g.At(center).Walls.Has(d) {
				t.Errorf("wall %v still present on %v", d, center)
			}
			if g.At(n).Walls.Has(d.Opposite()) {
				t.Errorf("wall %v still present on %v", d.Opposite(), n)
			}
			if got := g.At(center).Walls.Count(); got != 3 {
				t.Errorf("center wall count = %d, want 3", got)
			}
		})
	}
}

func TestRemoveWallNonAdjacentPanics(t *testing.T) {
	g, _ := New(3, 3)
	defer func() {
		if recover() == nil {
			t.Error("RemoveWall() with a wrong direction should panic")
		}
	}()
	g.RemoveWall(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, South)
}

func TestNeighborAtEdge(t *testing.T) {
	g, _ := New(2, 2)
	if _, ok := g.Neighbor(Point{X: 0, Y: 0}, North); ok {
		t.Error("north of the top row should be out of bounds")
	}
	if _, ok := g.Neighbor(Point{X: 0, Y: 0}, West); ok {
		t.Error("west of the left column should be out of bounds")
	}
	if p, ok := g.Neighbor(Point{X: 0, Y: 0}, East); !ok || p != (Point{X: 1, Y: 0}) {
		t.Errorf("Neighbor(east) = %v, %v; want (1,0), true", p, ok)
	}
}

func TestClone(t *testing.T) {
	g, _ := New(2, 1)
	c := g.Clone()
	g.RemoveWall(Point{X: 0, Y: 0}, Point{X: 1, Y: 0}, East)

	if !c.At(Point{X: 0, Y: 0}).Sealed() {
		t.Error("Clone() shares cell storage with the original")
	}
}
