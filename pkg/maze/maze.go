package maze

import (
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/perfectmaze/pkg/core/backtrack"
	"github.com/matzehuels/perfectmaze/pkg/core/codec"
	"github.com/matzehuels/perfectmaze/pkg/core/grid"
	"github.com/matzehuels/perfectmaze/pkg/core/pattern"
	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// Pattern names recorded in documents.
const (
	PatternNone   = "none"
	Pattern42     = "42"
	PatternCustom = "custom"
)

// Maze is a generated maze.
type Maze struct {
	ID             string       `json:"id" bson:"_id"`
	Width          int          `json:"width" bson:"width"`
	Height         int          `json:"height" bson:"height"`
	Seed           uint64       `json:"seed" bson:"seed"`
	Strategy       string       `json:"strategy" bson:"strategy"`
	Pattern        string       `json:"pattern" bson:"pattern"`
	PatternSkipped bool         `json:"pattern_skipped,omitempty" bson:"pattern_skipped,omitempty"` // grid below the pattern minimum
	Start          grid.Point   `json:"start" bson:"start"`
	Reserved       []grid.Point `json:"reserved,omitempty" bson:"reserved,omitempty"`
	Walls          []string     `json:"walls" bson:"walls"` // hex rows, top to bottom
	Visited        int          `json:"visited" bson:"visited"`
	Carved         int          `json:"carved" bson:"carved"`
	CreatedAt      time.Time    `json:"created_at" bson:"created_at"`
}

// Meta carries the generation parameters that are not visible in the grid.
type Meta struct {
	Seed           uint64
	Strategy       backtrack.Strategy
	Pattern        string
	PatternSkipped bool
}

// New captures a carved grid as a document with a fresh ID.
func New(g *grid.Grid, reserved pattern.Reserved, meta Meta, res backtrack.Result) *Maze {
	m := &Maze{
		Width:          g.Width(),
		Height:         g.Height(),
		Seed:           meta.Seed,
		Strategy:       meta.Strategy.String(),
		Pattern:        meta.Pattern,
		PatternSkipped: meta.PatternSkipped,
		Start:          res.Start,
		Reserved:       reserved.Points(),
		Walls:          codec.Rows(g),
		Visited:        res.Visited,
		Carved:         res.Carved,
	}
	if m.Pattern == "" {
		m.Pattern = PatternNone
	}
	m.Restamp()
	return m
}

// Restamp gives m a new ID and creation time. Cached documents are
// restamped before they are handed out again.
func (m *Maze) Restamp() {
	m.ID = uuid.NewString()
	m.CreatedAt = time.Now().UTC()
}

// Clone returns a deep copy of m.
func (m *Maze) Clone() *Maze {
	c := *m
	c.Reserved = slices.Clone(m.Reserved)
	c.Walls = slices.Clone(m.Walls)
	return &c
}

// Validate checks the document's shape. It does not decode the walls.
func (m *Maze) Validate() error {
	if err := errors.ValidateMazeID(m.ID); err != nil {
		return err
	}
	if m.Width <= 0 || m.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidDimensions,
			"maze dimensions must be positive, got %dx%d", m.Width, m.Height)
	}
	if len(m.Walls) != m.Height {
		return errors.New(errors.ErrCodeInvalidEncoding, "maze has %d wall rows, want %d", len(m.Walls), m.Height)
	}
	for _, p := range m.Reserved {
		if p.X < 0 || p.X >= m.Width || p.Y < 0 || p.Y >= m.Height {
			return errors.New(errors.ErrCodeInvalidPattern, "reserved point %v outside %dx%d maze", p, m.Width, m.Height)
		}
	}
	return nil
}

// ReservedSet returns the reserved cells as a set.
func (m *Maze) ReservedSet() pattern.Reserved {
	return pattern.NewReserved(m.Reserved...)
}

// Grid decodes the walls and re-marks the reserved cells, restoring the
// grid the generator left behind.
func (m *Maze) Grid() (*grid.Grid, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	g, err := codec.Decode(m.Walls)
	if err != nil {
		return nil, err
	}
	if g.Width() != m.Width {
		return nil, errors.New(errors.ErrCodeInvalidEncoding, "maze walls are %d cells wide, want %d", g.Width(), m.Width)
	}
	reserved := m.ReservedSet()
	pattern.Apply(g, reserved)
	m.restoreVisited(g, reserved)
	return g, nil
}

// restoreVisited re-marks free cells whose walls alone do not show that the
// walk reached them. The start of a run with no neighbours to carve into,
// such as the only cell of a 1×1 maze, keeps all four walls.
func (m *Maze) restoreVisited(g *grid.Grid, reserved pattern.Reserved) {
	if m.Visited == 0 {
		return
	}
	if g.Contains(m.Start) && !reserved.Has(m.Start) {
		g.At(m.Start).Visited = true
	}
	if m.Visited != g.Len()-reserved.Len() {
		return
	}
	g.Each(func(p grid.Point, c *grid.Cell) {
		if !reserved.Has(p) {
			c.Visited = true
		}
	})
}
