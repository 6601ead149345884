package worldgen

import "github.com/ojrac/opensimplex-go"

// ZoneNoise softens the hard rectangular edges a region modifier would
// otherwise leave in the terrain. It is a pure function of seed and
// position: unlike RNG, evaluating it twice at the same (x,y) always
// returns the same value, and it never advances the engine's draw
// stream, so it stays outside the determinism contract's single-RNG
// rule instead of competing with it.
type ZoneNoise struct {
	noise opensimplex.Noise
}

// NewZoneNoise derives a noise field from the run's rng seed. Using the
// same seed as the RNG (rather than an independent one) keeps a run
// fully reproducible from its one integer input.
func NewZoneNoise(seed int64) *ZoneNoise {
	return &ZoneNoise{noise: opensimplex.New(seed)}
}

// At returns a value in [0, 1] for grid position (x,y).
func (z *ZoneNoise) At(x, y int) float64 {
	return (z.noise.Eval2(float64(x), float64(y)) + 1) / 2
}

// EdgeFactor returns a multiplier in [falloffMin, 1] for a position at
// normalized distance frac from the region's center (0 at the center, 1
// at its edge), jittered by zone noise so the boundary
// between two modifier rectangles doesn't read as a straight seam.
func (z *ZoneNoise) EdgeFactor(x, y int, frac, falloffMin float64) float64 {
	if frac <= 0 {
		return 1
	}
	if frac > 1 {
		frac = 1
	}
	jitter := 0.85 + 0.3*z.At(x, y) // +-15% around the noise-free falloff
	factor := 1 - frac*(1-falloffMin)*jitter
	if factor < falloffMin {
		return falloffMin
	}
	if factor > 1 {
		return 1
	}
	return factor
}
