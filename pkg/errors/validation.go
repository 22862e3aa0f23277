package errors

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// MaxDimension bounds the width and height accepted from untrusted input
// (API requests, config files). The core itself only requires positive values.
const MaxDimension = 1000

// ValidateDimensions checks that a maze size is positive and not larger than
// MaxDimension on either axis.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimensions, "maze dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "maze dimensions must not exceed %d, got %dx%d", MaxDimension, width, height)
	}
	return nil
}

// ValidateMazeID validates a maze document identifier.
// Identifiers are UUIDs; anything else is rejected before it reaches a store.
func ValidateMazeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "maze id cannot be empty")
	}
	if _, err := uuid.Parse(id); err != nil {
		return Wrap(ErrCodeInvalidInput, err, "invalid maze id %q", id)
	}
	return nil
}

// ValidatePatternRows validates the textual form of a pattern bitmap.
//
// Validation rules:
//   - At least one row
//   - All rows have the same, non-zero length
//   - Only '0', '1', '.', '#' and ' ' characters
func ValidatePatternRows(rows []string) error {
	if len(rows) == 0 {
		return New(ErrCodeInvalidPattern, "pattern must have at least one row")
	}
	width := len(rows[0])
	if width == 0 {
		return New(ErrCodeInvalidPattern, "pattern rows cannot be empty")
	}
	for i, row := range rows {
		if len(row) != width {
			return New(ErrCodeInvalidPattern, "pattern row %d has length %d, want %d", i, len(row), width)
		}
		for _, r := range row {
			if unicode.IsControl(r) || !strings.ContainsRune("01.# ", r) {
				return New(ErrCodeInvalidPattern, "pattern row %d contains invalid character %q", i, r)
			}
		}
	}
	return nil
}
