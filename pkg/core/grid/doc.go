// Package grid provides the cell and wall data model for perfect mazes.
//
// # Overview
//
// A [Grid] is a fixed-size rectangle of [Cell] values addressed by (x, y),
// with x growing east and y growing south. Every cell carries a visited flag
// and a four-bit [Walls] set. A fresh grid has every wall present and no cell
// visited; generators carve passages by calling [Grid.RemoveWall], which
// always clears both sides of the shared wall so the two neighbours agree.
//
// # Directions
//
// [Direction] enumerates North, East, South and West. Each direction has a
// unit [Direction.Delta] and an [Direction.Opposite]; [Directions] lists all
// four in a fixed order, which is the order wall bits are assigned:
//
//	North = bit 0, East = bit 1, South = bit 2, West = bit 3
//
// # Preconditions
//
// Out-of-bounds access and non-adjacent wall removal are programmer errors and
// panic. Callers check [Grid.InBounds] or use [Grid.Neighbor] first. The only
// recoverable error is an invalid size passed to [New].
//
// # Concurrency
//
// A Grid is not safe for concurrent mutation. Generation owns the grid from
// start to finish; afterwards it may be read from multiple goroutines.
package grid
