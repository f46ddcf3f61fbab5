// Package entropy provides the seeded randomness source shared by every
// stochastic model in the simulation. One Roller per universe keeps
// independent universes in the same process reproducible.
package entropy

import (
	"math/rand"
)

// Roller wraps a seeded PRNG with the draw shapes the simulation uses.
// Not safe for concurrent use: the week pipeline is sequential, and the
// fight batch pre-draws its randomness before fanning out.
type Roller struct {
	rng *rand.Rand
}

// NewRoller creates a Roller from a seed.
func NewRoller(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

// Chance returns true with probability p. p outside [0,1] saturates.
func (r *Roller) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.rng.Float64() < p
}

// Float returns a uniform float64 in [0, 1).
func (r *Roller) Float() float64 {
	return r.rng.Float64()
}

// Between returns a uniform float64 in [lo, hi).
func (r *Roller) Between(lo, hi float64) float64 {
	return lo + r.rng.Float64()*(hi-lo)
}

// IntBetween returns a uniform int in [lo, hi] inclusive.
func (r *Roller) IntBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rng.Intn(hi-lo+1)
}

// Intn returns a uniform int in [0, n).
func (r *Roller) Intn(n int) int {
	return r.rng.Intn(n)
}

// Normal returns a normally distributed float64 with the given mean and
// standard deviation.
func (r *Roller) Normal(mean, stddev float64) float64 {
	return mean + r.rng.NormFloat64()*stddev
}

// WeightedIndex picks an index from weights proportionally. Non-positive
// weights are treated as zero. Returns -1 when every weight is zero.
func (r *Roller) WeightedIndex(weights []float64) int {
	total := 0.0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	draw := r.rng.Float64() * total
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		draw -= w
		if draw < 0 {
			return i
		}
	}
	return len(weights) - 1
}

// Int63 returns a non-negative random int64, used to derive sub-seeds for
// per-fighter noise curves.
func (r *Roller) Int63() int64 {
	return r.rng.Int63()
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
