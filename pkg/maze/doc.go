// Package maze defines the serializable maze document.
//
// A [Maze] is the wire and storage format for a generated maze: JSON files
// written by the CLI, API responses, cache entries and MongoDB documents all
// use it. Walls are stored as hex rows (see the codec package) and the
// reserved pattern cells as an explicit point list, so a document restores
// the exact grid without rerunning the generator:
//
//	{
//	  "id": "0f6c...",
//	  "width": 3, "height": 2, "seed": 42, "strategy": "iterative",
//	  "start": {"x": 0, "y": 0},
//	  "walls": ["9A3", "C46"],
//	  ...
//	}
//
// Common operations:
//
//	m := maze.New(g, reserved, maze.Meta{Seed: seed, Strategy: "iterative"}, res)
//	data, _ := maze.Marshal(m)
//	m, _ = maze.ReadFile("maze.json")
//	g, _ := m.Grid()
package maze
