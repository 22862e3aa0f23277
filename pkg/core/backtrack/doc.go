// Package backtrack carves a perfect maze with randomized depth-first search.
//
// # Algorithm
//
// The [Generator] starts from a uniformly random free cell (one that is not
// reserved by a pattern), marks it visited, shuffles the four directions and
// walks into the first unvisited free neighbour, removing the wall between the
// two cells. When every neighbour of a cell has been tried it backtracks. The
// removed walls form a spanning tree over the free cells reachable from the
// start.
//
// Free cells cut off from the start by reserved cells stay unvisited. A single
// run never reaches them.
//
// # Strategies
//
// [Iterative] keeps an explicit stack of frames and is the default.
// [Recursive] uses the call stack and refuses grids with more free cells than
// the configured depth guard (see [WithMaxRecursionDepth]) before touching the
// grid. Both strategies consume random numbers in the same order, so a given
// seed yields the same maze under either one.
//
// # Randomness
//
// The generator only needs a [Rand]. [NewRand] returns a seeded PCG source and
// [NewSeed] draws a fresh seed, so callers can always report the seed a maze
// was built from.
package backtrack
