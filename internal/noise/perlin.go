// Package noise implements seedable 1D and 2D gradient (Perlin) noise and
// fractal octave summation over it.
//
// All evaluation is a pure function of the generator's permutation table,
// which is fixed at construction. A Generator may be shared by any number of
// goroutines once built.
//
// Preconditions, which are not checked: coordinates are finite and frequency
// is finite and normally positive. Non-finite input yields non-finite output.
package noise

import (
	"math"
	"time"
)

const (
	// mask1D keeps i0+1 inside the table. It drops the low bit, so odd and
	// even lattice cells share hashes; 2D uses the exact mod-256 mask 255.
	// Kept for output parity with existing seeds.
	mask1D = 254
	mask2D = TableSize - 1
)

// Generator evaluates noise against one shuffled permutation table.
type Generator struct {
	seed  int64
	table PermutationTable
}

// New creates a generator whose table is the canonical table shuffled with seed.
func New(seed int64) *Generator {
	return &Generator{
		seed:  seed,
		table: Shuffle(canonical, seed),
	}
}

// NewFromTime seeds a generator with the current Unix time in seconds.
// Callers that need reproducible output must use New.
func NewFromTime() *Generator {
	return New(time.Now().Unix())
}

// Seed returns the seed the table was shuffled with.
func (g *Generator) Seed() int64 {
	return g.seed
}

// Table returns a copy of the shuffled permutation table.
func (g *Generator) Table() PermutationTable {
	return g.table
}

// Noise1D returns 1D gradient noise at x scaled by frequency, in [-1, 1].
// Integer lattice points (after scaling) always evaluate to 0.
func (g *Generator) Noise1D(x, frequency float64) float64 {
	x *= frequency
	i0 := int(math.Floor(x))

	t0 := x - float64(i0) // distance from the left lattice point
	t1 := t0 - 1          // distance from the right lattice point

	i0 &= mask1D
	i1 := i0 + 1

	g0 := gradients1D[g.table.at(i0)&1]
	g1 := gradients1D[g.table.at(i1)&1]

	v0 := g0 * t0
	v1 := g1 * t1

	return lerp(v0, v1, fade(t0)) * 2
}

// Noise2D returns 2D gradient noise at (x, y) scaled by frequency, nominally
// in [-√2, √2].
func (g *Generator) Noise2D(x, y, frequency float64) float64 {
	x *= frequency
	y *= frequency
	ix0 := int(math.Floor(x))
	iy0 := int(math.Floor(y))

	tx0 := x - float64(ix0)
	ty0 := y - float64(iy0)
	tx1 := tx0 - 1
	ty1 := ty0 - 1

	ix0 &= mask2D
	iy0 &= mask2D
	ix1 := ix0 + 1
	iy1 := iy0 + 1

	h0 := g.table.at(ix0)
	h1 := g.table.at(ix1 & mask2D)

	// Combine the column hash with the row and hash again; low 3 bits pick
	// one of the 8 gradients.
	g00 := gradients2D[g.table.at((h0+iy0)&mask2D)&7]
	g10 := gradients2D[g.table.at((h1+iy0)&mask2D)&7]
	g01 := gradients2D[g.table.at((h0+iy1)&mask2D)&7]
	g11 := gradients2D[g.table.at((h1+iy1)&mask2D)&7]

	v00 := g00.dot(tx0, ty0)
	v10 := g10.dot(tx1, ty0)
	v01 := g01.dot(tx0, ty1)
	v11 := g11.dot(tx1, ty1)

	tx := fade(tx0)
	ty := fade(ty0)

	return lerp(
		lerp(v00, v10, tx),
		lerp(v01, v11, tx),
		ty,
	) * math.Sqrt2
}
