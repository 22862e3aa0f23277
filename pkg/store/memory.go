package store

import (
	"context"
	"sync"

	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// MemoryStore keeps mazes in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	mazes map[string]*maze.Maze
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{mazes: make(map[string]*maze.Maze)}
}

func (s *MemoryStore) Save(ctx context.Context, m *maze.Maze) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.mazes[m.ID]; ok {
		return ErrDuplicate
	}
	s.mazes[m.ID] = m.Clone()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*maze.Maze, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mazes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.Clone(), nil
}

func (s *MemoryStore) List(ctx context.Context, limit int) ([]*maze.Maze, error) {
	s.mu.RLock()
	out := make([]*maze.Maze, 0, len(s.mazes))
	for _, m := range s.mazes {
		out = append(out, m.Clone())
	}
	s.mu.RUnlock()

	newestFirst(out)
	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.mazes, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
