// Package store keeps a history of generated mazes.
//
// Three backends implement [Store]:
//   - [MemoryStore]: process-local, for tests and a throwaway server
//   - [FileStore]: one JSON file per maze, the CLI default
//     (~/.local/share/perfectmaze/mazes/)
//   - [MongoStore]: a MongoDB collection for the HTTP server
//
// Documents are [maze.Maze] values keyed by their ID. Lookups of unknown IDs
// return [ErrNotFound].
//
//	s, err := store.NewMongoStore(ctx, store.MongoConfig{URI: "mongodb://localhost:27017"})
//	if err := s.Save(ctx, m); err != nil { ... }
//	recent, err := s.List(ctx, 10)
package store

import (
	"context"
	"errors"
	"slices"

	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a maze does not exist.
	ErrNotFound = errors.New("maze not found")

	// ErrDuplicate is returned when saving a maze whose ID is already stored.
	ErrDuplicate = errors.New("maze already stored")
)

// DefaultListLimit bounds List when the caller passes limit <= 0.
const DefaultListLimit = 20

// Store persists maze documents.
type Store interface {
	// Save stores m. Saving an ID twice returns ErrDuplicate.
	Save(ctx context.Context, m *maze.Maze) error
	// Get returns the maze with the given ID or ErrNotFound.
	Get(ctx context.Context, id string) (*maze.Maze, error)
	// List returns up to limit mazes, newest first.
	List(ctx context.Context, limit int) ([]*maze.Maze, error)
	// Delete removes a maze. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error
	// Close releases the backend's resources.
	Close() error
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}

// newestFirst sorts by creation time, newest first, breaking ties by ID.
func newestFirst(ms []*maze.Maze) {
	slices.SortFunc(ms, func(a, b *maze.Maze) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
}
