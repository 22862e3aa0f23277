package treeview

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
)

// Spacing is the distance between neighbouring cells, in inches.
const Spacing = 0.5

// Options configures the diagram.
type Options struct {
	// ShowReserved draws reserved cells as grey squares.
	ShowReserved bool
}

// NodeID returns the DOT identifier of the cell at p.
func NodeID(p grid.Point) string { return fmt.Sprintf("%d,%d", p.X, p.Y) }

// ToDOT converts the carved paths of g to an undirected Graphviz graph.
func ToDOT(g *grid.Grid, reserved pattern.Reserved, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("graph maze {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=black, label=\"\", width=0.12, fixedsize=true];\n")
	buf.WriteString("  edge [penwidth=3];\n")
	buf.WriteString("\n")

	g.Each(func(p grid.Point, c *grid.Cell) {
		switch {
		case reserved.Has(p):
			if opts.ShowReserved {
				fmt.Fprintf(&buf, "  %q [pos=%q, shape=square, width=%.2f, fillcolor=lightgrey, color=lightgrey];\n",
					NodeID(p), pos(p), Spacing)
			}
		case c.Visited:
			fmt.Fprintf(&buf, "  %q [pos=%q];\n", NodeID(p), pos(p))
		}
	})

	buf.WriteString("\n")
	g.Each(func(p grid.Point, c *grid.Cell) {
		if reserved.Has(p) {
			return
		}
		for _, d := range []grid.Direction{grid.East, grid.South} {
			if c.Walls.Has(d) {
				continue
			}
			n, ok := g.Neighbor(p, d)
			if !ok || reserved.Has(n) {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q;\n", NodeID(p), NodeID(n))
		}
	})

	buf.WriteString("}\n")
	return buf.String()
}

// pos pins p in inches; Graphviz's y axis points up.
func pos(p grid.Point) string {
	return fmt.Sprintf("%.2f,%.2f!", float64(p.X)*Spacing, float64(-p.Y)*Spacing)
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the drawing scales from 0,0.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
