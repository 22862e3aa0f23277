// Package codec encodes wall state as hexadecimal digits.
//
// Each cell becomes one digit whose bits are the walls that are present:
// bit 0 North, bit 1 East, bit 2 South, bit 3 West. A fully walled cell is
// 'F' and a cell with no walls is '0'. A grid becomes one string per row.
package codec

import (
	"strings"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

const digits = "0123456789ABCDEF"

// EncodeWalls returns the hex digit for w.
func EncodeWalls(w grid.Walls) byte { return digits[w&grid.AllWalls] }

// Encode returns the hex digit for c's walls.
func Encode(c grid.Cell) byte { return EncodeWalls(c.Walls) }

// Rows encodes g as one hex string per row, top to bottom.
func Rows(g *grid.Grid) []string {
	rows := make([]string, g.Height())
	buf := make([]byte, g.Width())
	for y := range rows {
		for x := range buf {
			buf[x] = Encode(*g.At(grid.Point{X: x, Y: y}))
		}
		rows[y] = string(buf)
	}
	return rows
}

// Format encodes g as newline-terminated hex rows.
func Format(g *grid.Grid) string {
	var sb strings.Builder
	sb.Grow((g.Width() + 1) * g.Height())
	for _, row := range Rows(g) {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// DecodeWalls parses a single hex digit, either case.
func DecodeWalls(b byte) (grid.Walls, bool) {
	switch {
	case b >= '0' && b <= '9':
		return grid.Walls(b - '0'), true
	case b >= 'A' && b <= 'F':
		return grid.Walls(b - 'A' + 10), true
	case b >= 'a' && b <= 'f':
		return grid.Walls(b - 'a' + 10), true
	}
	return 0, false
}

// Decode rebuilds a grid from hex rows. Every cell with at least one open
// wall is marked visited. Fully walled cells stay unvisited; callers that
// know the reserved set should re-apply it.
//
// Decode returns an INVALID_ENCODING error for empty input, rows of unequal
// length, non-hex characters, walls open on only one side, or open walls on
// the outer border.
func Decode(rows []string) (*grid.Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "encoded maze is empty")
	}
	g, err := grid.New(len(rows[0]), len(rows))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEncoding, err, "encoded maze has invalid size")
	}

	for y, row := range rows {
		if len(row) != g.Width() {
			return nil, errors.New(errors.ErrCodeInvalidEncoding,
				"row %d has %d cells, want %d", y, len(row), g.Width())
		}
		for x := 0; x < len(row); x++ {
			w, ok := DecodeWalls(row[x])
			if !ok {
				return nil, errors.New(errors.ErrCodeInvalidEncoding,
					"row %d column %d: %q is not a hex digit", y, x, row[x])
			}
			c := g.At(grid.Point{X: x, Y: y})
			c.Walls = w
			c.Visited = w != grid.AllWalls
		}
	}

	var bad error
	g.Each(func(p grid.Point, c *grid.Cell) {
		if bad != nil {
			return
		}
		for _, d := range grid.Directions {
			if c.Walls.Has(d) {
				continue
			}
			n, ok := g.Neighbor(p, d)
			if !ok {
				bad = errors.New(errors.ErrCodeInvalidEncoding, "cell %v has an open %v border wall", p, d)
				return
			}
			if g.At(n).Walls.Has(d.Opposite()) {
				bad = errors.New(errors.ErrCodeInvalidEncoding,
					"wall %v of cell %v is open but %v of %v is not", d, p, d.Opposite(), n)
				return
			}
		}
	})
	if bad != nil {
		return nil, bad
	}
	return g, nil
}
