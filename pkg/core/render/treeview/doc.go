// Package treeview draws the spanning tree of a carved maze with Graphviz.
//
// Every visited free cell becomes a node pinned at its grid position and
// every removed wall becomes an edge, so the picture shows the paths of the
// maze rather than its walls. Reserved cells can optionally be drawn as grey
// squares to outline the pattern.
//
//	dot := treeview.ToDOT(g, reserved, treeview.Options{})
//	svg, err := treeview.RenderSVG(ctx, dot)
//
// The DOT source selects the neato engine with pinned positions, so it also
// renders unchanged with the graphviz command line tools.
package treeview
