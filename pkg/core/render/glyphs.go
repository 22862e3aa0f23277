package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// Glyphs is the character set the renderer draws with.
type Glyphs struct {
	Name string

	Corner string // joint between separators

	HWall string // horizontal wall, cell width
	HOpen string // missing horizontal wall, cell width
	Solid string // reserved or fully walled cell body, cell width
	Open  string // carved cell body, cell width

	VWall string // vertical wall, separator width
	VOpen string // missing vertical wall, separator width
}

var (
	ASCII = Glyphs{
		Name:   "ascii",
		Corner: "+",
		HWall:  "---",
		HOpen:  "   ",
		Solid:  "###",
		Open:   "   ",
		VWall:  "|",
		VOpen:  " ",
	}

	Unicode = Glyphs{
		Name:   "unicode",
		Corner: "┼",
		HWall:  "───",
		HOpen:  "   ",
		Solid:  "███",
		Open:   "   ",
		VWall:  "│",
		VOpen:  " ",
	}
)

// GlyphSets lists the built-in glyph sets, default first.
var GlyphSets = []Glyphs{ASCII, Unicode}

// GlyphsByName returns a built-in glyph set. The empty name selects ASCII.
func GlyphsByName(name string) (Glyphs, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ASCII, nil
	}
	for _, g := range GlyphSets {
		if g.Name == name {
			return g, nil
		}
	}
	return Glyphs{}, errors.New(errors.ErrCodeInvalidGlyphs, "unknown glyph set %q (must be 'ascii' or 'unicode')", name)
}

// Validate checks that every glyph is non-empty and that glyphs sharing a
// slot have the same display width.
func (g Glyphs) Validate() error {
	cell := []string{g.HWall, g.HOpen, g.Solid, g.Open}
	sep := []string{g.Corner, g.VWall, g.VOpen}

	if err := sameWidth("cell", cell); err != nil {
		return err
	}
	return sameWidth("separator", sep)
}

func sameWidth(slot string, glyphs []string) error {
	want := lipgloss.Width(glyphs[0])
	if want == 0 {
		return errors.New(errors.ErrCodeInvalidGlyphs, "%s glyphs must not be empty", slot)
	}
	for _, s := range glyphs[1:] {
		if w := lipgloss.Width(s); w != want || strings.ContainsAny(s, "\r\n") {
			return errors.New(errors.ErrCodeInvalidGlyphs,
				"%s glyph %q has width %d, want %d", slot, s, w, want)
		}
	}
	return nil
}
