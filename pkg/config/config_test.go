package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() error: %v", err)
	}
}

func TestRead(t *testing.T) {
	src := `
[maze]
width = 40
strategy = "recursive"
seed = 42

[pattern]
name = "custom"
rows = ["101", "010"]
fit = "exact"

[cache]
backend = "redis"
ttl = "1h"

[redis]
addr = "cache:6379"
db = 2
`
	cfg, err := Read(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}

	if cfg.Maze.Width != 40 {
		t.Errorf("Width = %d, want 40", cfg.Maze.Width)
	}
	if cfg.Maze.Height != 10 {
		t.Errorf("Height = %d, want default 10", cfg.Maze.Height)
	}
	if cfg.Maze.Seed == nil || *cfg.Maze.Seed != 42 {
		t.Errorf("Seed = %v, want 42", cfg.Maze.Seed)
	}
	if cfg.Pattern.Name != "custom" || len(cfg.Pattern.Rows) != 2 || cfg.Pattern.Fit != "exact" {
		t.Errorf("Pattern = %+v", cfg.Pattern)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.TTL.Duration != time.Hour {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Redis.Addr != "cache:6379" || cfg.Redis.DB != 2 || cfg.Redis.Prefix != "perfectmaze:" {
		t.Errorf("Redis = %+v", cfg.Redis)
	}
	if cfg.Store.Backend != StoreFile {
		t.Errorf("Store.Backend = %q, want default %q", cfg.Store.Backend, StoreFile)
	}
}

func TestReadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", "[maze\nwidth = 1"},
		{"unknown key", "[maze]\ncolour = \"red\""},
		{"cache backend", "[cache]\nbackend = \"memcached\""},
		{"store backend", "[store]\nbackend = \"sqlite\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\""},
		{"bad ttl", "[cache]\nttl = \"soon\""},
		{"strategy", "[maze]\nstrategy = \"bfs\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Read(strings.NewReader(tt.src)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadUnknownKeyCode(t *testing.T) {
	_, err := Read(strings.NewReader("[server]\nport = 80"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestLoadMissingDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Maze.Width != Default().Maze.Width {
		t.Error("missing default file should yield Default()")
	}
}

func TestLoadMissingExplicit(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("missing explicit file should fail")
	}
}

func TestLoadDefaultPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(dir, "perfectmaze", FileName) {
		t.Errorf("DefaultPath() = %q", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("Server.Addr = %q, want :9000", cfg.Server.Addr)
	}
}

func TestWriteReadsBack(t *testing.T) {
	want := Default()
	want.Maze.Width = 33
	want.Cache.TTL = Duration{90 * time.Minute}

	var buf bytes.Buffer
	if err := Write(want, &buf); err != nil {
		t.Fatalf("Write() error: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read() error: %v\n%s", err, buf.String())
	}
	if got.Maze.Width != 33 || got.Cache.TTL.Duration != 90*time.Minute {
		t.Errorf("read back %+v", got)
	}
}
