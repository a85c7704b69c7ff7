package noise

// Fractal1D sums octaves of Noise1D and normalizes by the total amplitude,
// keeping the result in [-1, 1].
//
// The first octave is Noise1D(x, frequency) at amplitude 1. Each further
// octave multiplies frequency by lacunarity and amplitude by persistence.
// Octaves are counted with a float comparison: octaves <= 1 gives the base
// noise alone, and a fractional count such as 2.5 runs ceil(octaves)
// octaves in total.
func (g *Generator) Fractal1D(x, frequency, octaves, lacunarity, persistence float64) float64 {
	return fractal(func(f float64) float64 {
		return g.Noise1D(x, f)
	}, frequency, octaves, lacunarity, persistence)
}

// Fractal2D is the 2D counterpart of Fractal1D. Its result stays
// approximately in [-1, 1]; the hard bound is Noise2D's [-√2, √2].
func (g *Generator) Fractal2D(x, y, frequency, octaves, lacunarity, persistence float64) float64 {
	return fractal(func(f float64) float64 {
		return g.Noise2D(x, y, f)
	}, frequency, octaves, lacunarity, persistence)
}

// fractal calls base exactly once per executed octave.
func fractal(base func(frequency float64) float64, frequency, octaves, lacunarity, persistence float64) float64 {
	sum := base(frequency)
	amplitude := 1.0
	total := 1.0
	for o := 1; float64(o) < octaves; o++ {
		frequency *= lacunarity
		amplitude *= persistence
		total += amplitude
		sum += base(frequency) * amplitude
	}
	return sum / total
}
