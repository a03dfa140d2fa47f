package random

import (
	"math/rand/v2"
)

// Random provides random number generation that can be mocked for testing
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int
}

// ProcessRandom implements Random using the process-wide source
type ProcessRandom struct{}

// New creates a new ProcessRandom
func New() *ProcessRandom {
	return &ProcessRandom{}
}

// Intn returns a random int in [0, n)
func (r *ProcessRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return rand.IntN(n)
}
