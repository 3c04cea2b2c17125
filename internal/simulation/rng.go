package simulation

import "math"

// DefaultSeed is the fixed generator seed. The engine is a pure function of
// its configuration, so the seed is a constant rather than a config input;
// tests and the CLI may override it on the Simulator.
const DefaultSeed uint32 = 2463534242

// minUniform guards the Box-Muller logarithm against a zero uniform deviate.
const minUniform = 1e-10

// Generator produces the reproducible deviate stream behind the Monte Carlo
// engine: uniform(0,1) values from a 32-bit xorshift state, and
// standard-normal values via the Box-Muller transform. Identical seeds and
// call orders yield bit-identical sequences.
type Generator struct {
	state uint32
}

// NewGenerator returns a generator seeded with seed; a zero seed (which
// would trap xorshift in the all-zero state) falls back to DefaultSeed.
func NewGenerator(seed uint32) *Generator {
	if seed == 0 {
		seed = DefaultSeed
	}
	return &Generator{state: seed}
}

// next32 advances the xorshift32 state (shifts 13, 17, 5). Each step wraps
// at 32 bits by construction of the uint32 type.
func (g *Generator) next32() uint32 {
	x := g.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	g.state = x
	return x
}

// Uniform returns the next deviate in [0, 1).
func (g *Generator) Uniform() float64 {
	return float64(g.next32()) / (1 << 32)
}

// Normal returns a standard-normal deviate. It consumes exactly two uniform
// deviates per call; the first is floor-clamped to minUniform before the
// logarithm.
func (g *Generator) Normal() float64 {
	u1 := g.Uniform()
	if u1 < minUniform {
		u1 = minUniform
	}
	u2 := g.Uniform()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}
