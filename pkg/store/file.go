package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/matzehuels/perfectmaze/pkg/errors"
	"github.com/matzehuels/perfectmaze/pkg/maze"
)

// FileStore is a file-based store for CLI applications.
// Mazes are stored as JSON files named after their ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// DefaultFileDir returns ~/.local/share/perfectmaze/mazes, honoring
// XDG_DATA_HOME when set.
func DefaultFileDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "perfectmaze", "mazes"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".local", "share", "perfectmaze", "mazes"), nil
}

// NewFileStore creates a file store in baseDir.
// If baseDir is empty, DefaultFileDir is used.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		dir, err := DefaultFileDir()
		if err != nil {
			return nil, err
		}
		baseDir = dir
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

// Path returns the base directory for maze files.
func (s *FileStore) Path() string { return s.baseDir }

func (s *FileStore) mazePath(id string) (string, error) {
	// IDs become file names; only accept UUIDs.
	if err := errors.ValidateMazeID(id); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, id+".json"), nil
}

func (s *FileStore) Save(ctx context.Context, m *maze.Maze) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.mazePath(m.ID)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if os.IsExist(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("create maze file: %w", err)
	}
	if err := maze.Write(m, f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func (s *FileStore) Get(ctx context.Context, id string) (*maze.Maze, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path, err := s.mazePath(id)
	if err != nil {
		return nil, ErrNotFound
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	return maze.ReadFile(path)
}

func (s *FileStore) List(ctx context.Context, limit int) ([]*maze.Maze, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	var out []*maze.Maze
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		m, err := maze.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			// Unreadable files are skipped rather than failing the listing.
			continue
		}
		out = append(out, m)
	}

	newestFirst(out)
	if limit = normalizeLimit(limit); len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.mazePath(id)
	if err != nil {
		return nil
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove maze file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
