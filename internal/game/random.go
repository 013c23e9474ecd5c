// Package game implements the Monty Hall doors and the stage machine that drives a round.
package game

import (
	"math/rand"
	"time"
)

// Source supplies the randomness for reward placement and safe-door reveals.
type Source interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// NewSource returns a Source seeded with the current time.
func NewSource() Source {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededSource returns a deterministic Source.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed))
}
