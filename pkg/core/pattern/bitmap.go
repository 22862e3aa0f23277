package pattern

import (
	"strings"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// Bitmap is a rectangular matrix of 0/1 values indexed [row][column].
type Bitmap [][]uint8

var glyph42 = Bitmap{
	{1, 1, 0, 0, 1, 0, 0, 1, 1, 1, 1, 1, 0},
	{1, 1, 0, 0, 1, 0, 0, 0, 0, 0, 0, 1, 0},
	{1, 1, 1, 1, 1, 0, 0, 1, 1, 1, 1, 1, 0},
	{0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 0, 0, 0},
	{0, 0, 0, 0, 1, 0, 0, 1, 1, 1, 1, 1, 0},
}

// Glyph42 returns a copy of the 13×5 "42" glyph.
func Glyph42() Bitmap { return glyph42.Clone() }

// ParseBitmap builds a bitmap from text rows. '1' and '#' are set cells,
// '0', '.' and ' ' are clear.
func ParseBitmap(rows []string) (Bitmap, error) {
	if err := errors.ValidatePatternRows(rows); err != nil {
		return nil, err
	}
	bm := make(Bitmap, len(rows))
	for y, row := range rows {
		bm[y] = make([]uint8, len(row))
		for x := 0; x < len(row); x++ {
			if row[x] == '1' || row[x] == '#' {
				bm[y][x] = 1
			}
		}
	}
	return bm, nil
}

// Width returns the number of columns.
func (b Bitmap) Width() int {
	if len(b) == 0 {
		return 0
	}
	return len(b[0])
}

// Height returns the number of rows.
func (b Bitmap) Height() int { return len(b) }

// Set reports whether the bit at column x, row y is 1.
func (b Bitmap) Set(x, y int) bool { return b[y][x] == 1 }

// Validate checks that the bitmap is non-empty, rectangular and binary.
func (b Bitmap) Validate() error {
	if b.Height() == 0 || b.Width() == 0 {
		return errors.New(errors.ErrCodeInvalidPattern, "pattern bitmap is empty")
	}
	w := b.Width()
	for y, row := range b {
		if len(row) != w {
			return errors.New(errors.ErrCodeInvalidPattern, "pattern row %d has %d columns, want %d", y, len(row), w)
		}
		for x, v := range row {
			if v > 1 {
				return errors.New(errors.ErrCodeInvalidPattern, "pattern value at (%d,%d) is %d, want 0 or 1", x, y, v)
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (b Bitmap) Clone() Bitmap {
	out := make(Bitmap, len(b))
	for i, row := range b {
		out[i] = append([]uint8(nil), row...)
	}
	return out
}

// Rows returns the bitmap in the text form accepted by [ParseBitmap].
func (b Bitmap) Rows() []string {
	rows := make([]string, len(b))
	for y, row := range b {
		var sb strings.Builder
		for _, v := range row {
			if v == 1 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		rows[y] = sb.String()
	}
	return rows
}
