package worldgen

import "math/rand"

// RNG is the single deterministic generator threaded explicitly through
// the solver and phases 2-3, per spec.md §5's determinism contract: given
// the same seed, every draw in the same order reproduces the same stream.
// It wraps math/rand's default algorithm (a stateful, seed-derived
// generator, not crypto/rand) rather than a hand-rolled LCG, matching the
// teacher's use of rand.New(rand.NewSource(seed)) throughout engine.go and
// enhanced_generator.go.
type RNG struct {
	r *rand.Rand
}

// NewRNG seeds a generator from a single integer, owned by the caller for
// the lifetime of one generation run.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewSource(seed))}
}

// Float64 draws a uniform value in [0, 1).
func (g *RNG) Float64() float64 { return g.r.Float64() }

// Intn draws a uniform integer in [0, n).
func (g *RNG) Intn(n int) int { return g.r.Intn(n) }

// Chance reports true with the given probability in [0, 1].
func (g *RNG) Chance(p float64) bool { return g.r.Float64() < p }
