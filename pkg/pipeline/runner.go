package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/perfectmaze/pkg/cache"
	"github.com/matzehuels/perfectmaze/pkg/maze"
	"github.com/matzehuels/perfectmaze/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration // cache entry lifetime; zero means cache.DefaultTTL
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete generate → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Generate
	genStart := time.Now()
	gen, genHit, err := r.GenerateWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("generate: %w", err)
	}
	result.Stats.GenerateTime = time.Since(genStart)
	result.CacheInfo.MazeHit = genHit
	result.fill(gen)

	r.Logger.Info("generated maze",
		"size", fmt.Sprintf("%dx%d", gen.Maze.Width, gen.Maze.Height),
		"seed", gen.Maze.Seed,
		"strategy", gen.Maze.Strategy,
		"carved", gen.Maze.Carved,
		"duration", result.Stats.GenerateTime)

	// Stage 2: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, gen, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (res *Result) fill(gen *Generated) {
	res.Maze = gen.Maze
	res.Grid = gen.Grid
	res.Reserved = gen.Reserved
	res.Report = gen.Report
	res.PatternSkipped = gen.Maze.PatternSkipped
	res.Stats.Cells = gen.Grid.Len()
	res.Stats.Reserved = gen.Reserved.Len()
	res.Stats.Visited = gen.Maze.Visited
	res.Stats.Carved = gen.Maze.Carved
}

// GenerateWithCacheInfo carves a maze with caching and returns cache hit info.
// Mazes are cached only when a seed is given, since an unseeded run is meant
// to differ every time.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (*Generated, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForGenerate(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	cacheKey := r.Keyer.MazeKey(opts.MazeKeyOpts())

	if opts.Cacheable() {
		var m maze.Maze
		if err := cache.GetJSON(ctx, r.Cache, cacheKey, &m); err == nil {
			m.Restamp()
			if gen, err := FromMaze(&m); err == nil {
				observability.Cache().OnCacheHit(ctx, "maze")
				return gen, true, nil // Cache hit
			}
			opts.Logger.Warn("discarding unreadable cached maze", "key", cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "maze")
	}

	start := time.Now()
	hooks.OnGenerateStart(ctx, opts.Width, opts.Height, opts.Strategy)
	gen, err := Generate(ctx, opts)
	if err != nil {
		hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, 0, time.Since(start), err)
		return nil, false, err
	}
	hooks.OnGenerateComplete(ctx, opts.Width, opts.Height, gen.Maze.Carved, time.Since(start), nil)
	if gen.Maze.PatternSkipped {
		hooks.OnPatternSkipped(ctx, opts.Width, opts.Height, opts.MinPatternWidth, opts.MinPatternHeight)
		opts.Logger.Debug("grid too small for pattern, carving without it",
			"min_width", opts.MinPatternWidth,
			"min_height", opts.MinPatternHeight)
	}

	// A seeded run is stored even on refresh so the next run can use it.
	if opts.Seed != nil {
		data, err := maze.Marshal(gen.Maze)
		if err == nil {
			err = r.Cache.Set(ctx, cacheKey, data, r.ttl())
		}
		if err != nil {
			opts.Logger.Debug("cache maze failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "maze", len(data))
		}
	}

	return gen, false, nil // Cache miss
}

// Generate is a convenience wrapper that calls GenerateWithCacheInfo and discards the cache hit info.
func (r *Runner) Generate(ctx context.Context, opts Options) (*Generated, error) {
	gen, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return gen, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
// Only Graphviz formats are cached; the others are cheaper to render than to fetch.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, gen *Generated, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnRenderStart(ctx, opts.Formats)

	artifacts, hit, err := r.render(ctx, gen, opts)
	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	return artifacts, hit, err
}

func (r *Runner) render(ctx context.Context, gen *Generated, opts Options) (map[string][]byte, bool, error) {
	if gen == nil || gen.Maze == nil {
		artifacts, err := Render(ctx, gen, opts)
		return artifacts, false, err
	}
	mazeHash := contentHash(gen.Maze)

	// Try to get cacheable formats from cache
	artifacts := make(map[string][]byte)
	var missing []string
	cached := 0
	for _, format := range opts.Formats {
		if !cacheableFormats[format] || opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(mazeHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			artifacts[format] = data
			cached++
			observability.Cache().OnCacheHit(ctx, "artifact")
		} else {
			missing = append(missing, format)
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
	}

	allCached := cached > 0 && len(missing) == 0
	if len(missing) == 0 {
		return artifacts, allCached, nil
	}

	sub := opts
	sub.Formats = missing
	rendered, err := Render(ctx, gen, sub)
	if err != nil {
		return nil, false, err
	}

	for format, data := range rendered {
		artifacts[format] = data
		if !cacheableFormats[format] {
			continue
		}
		key := r.Keyer.ArtifactKey(mazeHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, false, nil
}

// RenderMaze renders a stored maze document.
func (r *Runner) RenderMaze(ctx context.Context, m *maze.Maze, opts Options) (map[string][]byte, error) {
	gen, err := FromMaze(m)
	if err != nil {
		return nil, err
	}
	artifacts, _, err := r.RenderWithCacheInfo(ctx, gen, opts)
	return artifacts, err
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, gen *Generated, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, gen, opts)
	return artifacts, err
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.DefaultTTL
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// contentHash identifies a maze by its walls and reserved cells only, so
// restamped copies of the same maze share rendered artifacts.
func contentHash(m *maze.Maze) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dx%d\n", m.Width, m.Height)
	for _, row := range m.Walls {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	for _, p := range m.Reserved {
		fmt.Fprintf(&b, "%d,%d;", p.X, p.Y)
	}
	return cache.Hash([]byte(b.String()))
}
