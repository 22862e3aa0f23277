// Package config loads the perfectmaze configuration file.
//
// The file is TOML and every key is optional; missing keys keep the values of
// [Default]. Command-line flags override what the file sets.
//
//	[maze]
//	width = 40
//	height = 20
//	strategy = "recursive"
//	glyphs = "unicode"
//
//	[pattern]
//	name = "custom"
//	rows = ["1010", "0101"]
//	fit = "exact"
//
//	[cache]
//	backend = "redis"
//
//	[redis]
//	addr = "localhost:6379"
//
//	[store]
//	backend = "mongo"
//	uri = "mongodb://localhost:27017"
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// FileName is the name of the configuration file inside the config directory.
const FileName = "config.toml"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreFile   = "file"
	StoreMemory = "memory"
	StoreMongo  = "mongo"
)

// Config is the parsed configuration file.
type Config struct {
	Maze    MazeConfig    `toml:"maze"`
	Pattern PatternConfig `toml:"pattern"`
	Cache   CacheConfig   `toml:"cache"`
	Redis   RedisConfig   `toml:"redis"`
	Store   StoreConfig   `toml:"store"`
	Server  ServerConfig  `toml:"server"`
}

// MazeConfig holds generation defaults.
type MazeConfig struct {
	Width             int     `toml:"width"`
	Height            int     `toml:"height"`
	Strategy          string  `toml:"strategy"`
	Seed              *uint64 `toml:"seed,omitempty"`
	Glyphs            string  `toml:"glyphs"`
	MaxRecursionDepth int     `toml:"max_recursion_depth"`
}

// PatternConfig selects the reserved pattern.
type PatternConfig struct {
	Name      string   `toml:"name"`
	Rows      []string `toml:"rows,omitempty"`
	Fit       string   `toml:"fit"`
	MinWidth  int      `toml:"min_width,omitempty"`
	MinHeight int      `toml:"min_height,omitempty"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend string   `toml:"backend"`
	Dir     string   `toml:"dir,omitempty"`
	TTL     Duration `toml:"ttl"`
}

// RedisConfig configures the redis cache backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// StoreConfig selects where generated mazes are saved.
type StoreConfig struct {
	Backend    string `toml:"backend"`
	Dir        string `toml:"dir,omitempty"`
	URI        string `toml:"uri,omitempty"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string ("168h") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Maze: MazeConfig{
			Width:             20,
			Height:            10,
			Strategy:          backtrack.Iterative.String(),
			Glyphs:            "ascii",
			MaxRecursionDepth: backtrack.DefaultMaxRecursionDepth,
		},
		Pattern: PatternConfig{
			Name: "42",
			Fit:  "scale",
		},
		Cache: CacheConfig{
			Backend: CacheFile,
			TTL:     Duration{7 * 24 * time.Hour},
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "perfectmaze:",
		},
		Store: StoreConfig{
			Backend:    StoreFile,
			Database:   "perfectmaze",
			Collection: "mazes",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/perfectmaze/config.toml, falling back
// to the platform config directory.
func DefaultPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "perfectmaze", FileName), nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "perfectmaze", FileName), nil
}

// Load reads the configuration at path. An empty path loads the default
// location, where a missing file is not an error.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Read(f)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Read parses configuration from r on top of [Default].
func Read(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidInput, "unknown config key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Write encodes cfg as TOML.
func Write(cfg Config, w io.Writer) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks values that can be checked without building anything.
// Dimensions, strategy, pattern and glyph names are validated again by the
// pipeline, which owns their defaults.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid cache backend %q (must be 'file', 'redis' or 'none')", c.Cache.Backend)
	}
	switch c.Store.Backend {
	case StoreFile, StoreMemory, StoreMongo:
	default:
		return errors.New(errors.ErrCodeInvalidInput,
			"invalid store backend %q (must be 'file', 'memory' or 'mongo')", c.Store.Backend)
	}
	if c.Store.Backend == StoreMongo && c.Store.URI == "" {
		return errors.New(errors.ErrCodeInvalidInput, "store backend 'mongo' requires a uri")
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache ttl must not be negative")
	}
	if _, err := backtrack.ParseStrategy(c.Maze.Strategy); err != nil {
		return err
	}
	if c.Maze.Seed != nil && *c.Maze.Seed > backtrack.MaxSeed {
		return errors.New(errors.ErrCodeInvalidInput, "seed %d exceeds the maximum %d", *c.Maze.Seed, uint64(backtrack.MaxSeed))
	}
	return nil
}
