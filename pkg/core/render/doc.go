// Package render draws a maze grid as text.
//
// # Layout
//
// Every cell is three characters wide and every row of cells takes two lines:
// the cell line with vertical walls and the line below it with horizontal
// walls. A grid of height h therefore renders as exactly 2h+1 lines, the
// first being the top border:
//
//	+---+---+---+
//	|###|       |
//	+---+   +---+
//	|           |
//	+---+---+---+
//
// Reserved cells and cells that still have all four walls are drawn solid.
// The outer border is always drawn, whatever the border cells' walls say.
//
// # Glyphs
//
// [ASCII] is the default glyph set. [Unicode] uses box-drawing characters and
// full blocks. Custom sets must keep the cell-sized glyphs and the
// separator-sized glyphs the same display width; [Glyphs.Validate] checks
// this.
//
// # Conversion
//
// [ToPDF] and [ToPNG] convert the SVG produced by the treeview subpackage
// using the external rsvg-convert tool.
package render
