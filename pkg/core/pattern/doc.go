// Package pattern reserves a glyph-shaped region of a maze grid.
//
// # Overview
//
// A [Bitmap] is a small rectangular 0/1 matrix (the default is the 13×5
// "42" glyph returned by [Glyph42]). [Compute] centers the bitmap on a grid of
// the given size and returns the [Reserved] set of grid coordinates it
// covers. [Apply] then seals those cells (visited, all four walls) so that the
// generator walks around them and the renderer draws them as solid blocks.
//
// # Scaling
//
// When the grid is smaller than the bitmap on an axis, that axis is scaled by
// grid/bitmap and every source coordinate is rounded to the nearest grid
// coordinate (ties to even). Several source points can land on the same cell
// near the minimum size, so the drawn glyph may look compressed or broken.
// Mapped points that fall off the grid are dropped. Both effects are
// accepted behavior of the scaling scheme.
//
// Grids narrower than the minimum width or shorter than the minimum height
// get no pattern at all: [Placement.Skipped] is set and the reserved set is
// empty. This is not an error.
//
// # Fit
//
// [FitScale] uses a minimum width of [DefaultMinWidth] and the bitmap height,
// allowing horizontal compression. [FitExact] requires the whole bitmap to fit,
// so scaling never happens.
package pattern
