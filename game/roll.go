package game

import "golang.org/x/exp/rand"

// Roller supplies uniform draws in [0,1) for effectiveness rolls. Every
// transition consumes a fresh draw, including transitions made inside
// search look-ahead.
type Roller func() float64

// NewRoller returns a seedable roll source. Draws are not safe for
// concurrent use; callers serialize transitions.
func NewRoller(seed uint64) Roller {
	rng := rand.New(rand.NewSource(seed))
	return rng.Float64
}
