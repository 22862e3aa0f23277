package cache

// Keyer derives cache keys.
type Keyer interface {
	// MazeKey returns the key of a generated maze document.
	MazeKey(opts MazeKeyOpts) string
	// ArtifactKey returns the key of a rendered artifact of the maze whose
	// content hash is mazeHash.
	ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string
}

// MazeKeyOpts lists every input that determines a generated maze.
type MazeKeyOpts struct {
	Width             int      `json:"w"`
	Height            int      `json:"h"`
	Seed              uint64   `json:"seed"`
	Strategy          string   `json:"strategy"`
	Pattern           string   `json:"pattern"`
	PatternRows       []string `json:"rows,omitempty"`
	MinPatternWidth   int      `json:"min_w"`
	MinPatternHeight  int      `json:"min_h"`
	MaxRecursionDepth int      `json:"max_depth,omitempty"`
}

// ArtifactKeyOpts lists the render settings of an artifact.
type ArtifactKeyOpts struct {
	Format       string `json:"format"`
	Glyphs       string `json:"glyphs,omitempty"`        // text output only
	ShowReserved bool   `json:"show_reserved,omitempty"` // reserved cells drawn in diagrams
}

// DefaultKeyer hashes the options with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MazeKey returns "maze:<sha256>".
func (DefaultKeyer) MazeKey(opts MazeKeyOpts) string {
	return hashKey("maze", opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (DefaultKeyer) ArtifactKey(mazeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", mazeHash, opts)
}
