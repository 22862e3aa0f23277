package backtrack

import (
	"math"
	"math/rand/v2"
)

// MaxSeed is the largest accepted seed. Seeds stay within int64 so that every
// storage backend can hold them.
const MaxSeed = math.MaxInt64

// Rand is the randomness the generator consumes. *rand.Rand satisfies it.
type Rand interface {
	// IntN returns a uniform integer in [0, n). It panics if n <= 0.
	IntN(n int) int
	// Shuffle permutes n elements uniformly using swap.
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a deterministic source for seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// NewSeed draws a seed in [0, MaxSeed] from the process-wide random source.
func NewSeed() uint64 {
	return rand.Uint64() & MaxSeed
}
