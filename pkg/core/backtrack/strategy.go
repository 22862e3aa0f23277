package backtrack

import (
	"strings"

	"github.com/matzehuels/perfectmaze/pkg/errors"
)

// Strategy selects how the depth-first walk keeps its stack.
type Strategy string

const (
	Iterative Strategy = "iterative"
	Recursive Strategy = "recursive"
)

// Strategies lists the supported strategies, default first.
var Strategies = []Strategy{Iterative, Recursive}

// ParseStrategy parses a strategy name, case-insensitively.
// The empty string selects Iterative.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Iterative:
		return Iterative, nil
	case Recursive:
		return Recursive, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidStrategy,
			"invalid strategy %q (must be 'iterative' or 'recursive')", s)
	}
}

func (s Strategy) String() string { return string(s) }
