package render

import (
	"strings"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

type options struct {
	glyphs Glyphs
}

// Option configures rendering.
type Option func(*options)

// WithGlyphs selects the glyph set.
func WithGlyphs(g Glyphs) Option {
	return func(o *options) { o.glyphs = g }
}

func buildOptions(opts []Option) options {
	o := options{glyphs: ASCII}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Lines renders g as 2·height+1 lines without trailing newlines.
// Glyphs are used as given; see [Render] for a validating variant.
func Lines(g *grid.Grid, reserved pattern.Reserved, opts ...Option) []string {
	if g == nil {
		return nil
	}
	gl := buildOptions(opts).glyphs
	w, h := g.Width(), g.Height()

	border := horizontal(w, gl, func(int) bool { return true })
	lines := make([]string, 0, 2*h+1)
	lines = append(lines, border)

	for y := 0; y < h; y++ {
		var sb strings.Builder
		sb.WriteString(gl.VWall)
		for x := 0; x < w; x++ {
			p := grid.Point{X: x, Y: y}
			c := g.At(p)
			if reserved.Has(p) || c.Sealed() {
				sb.WriteString(gl.Solid)
			} else {
				sb.WriteString(gl.Open)
			}
			if x == w-1 || c.Walls.Has(grid.East) {
				sb.WriteString(gl.VWall)
			} else {
				sb.WriteString(gl.VOpen)
			}
		}
		lines = append(lines, sb.String())

		if y == h-1 {
			lines = append(lines, border)
			continue
		}
		lines = append(lines, horizontal(w, gl, func(x int) bool {
			p := grid.Point{X: x, Y: y}
			return reserved.Has(p) || g.At(p).Walls.Has(grid.South)
		}))
	}
	return lines
}

func horizontal(w int, gl Glyphs, wall func(x int) bool) string {
	var sb strings.Builder
	sb.WriteString(gl.Corner)
	for x := 0; x < w; x++ {
		if wall(x) {
			sb.WriteString(gl.HWall)
		} else {
			sb.WriteString(gl.HOpen)
		}
		sb.WriteString(gl.Corner)
	}
	return sb.String()
}

// Render renders g as newline-terminated text.
// It returns INVALID_INPUT for a nil grid and INVALID_GLYPHS for a glyph set
// that fails [Glyphs.Validate].
func Render(g *grid.Grid, reserved pattern.Reserved, opts ...Option) (string, error) {
	if g == nil {
		return "", errors.New(errors.ErrCodeInvalidInput, "cannot render a nil grid")
	}
	if err := buildOptions(opts).glyphs.Validate(); err != nil {
		return "", err
	}
	lines := Lines(g, reserved, opts...)
	return strings.Join(lines, "\n") + "\n", nil
}
