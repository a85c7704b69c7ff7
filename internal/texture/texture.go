// Package texture samples fractal noise over a grid and maps it to colors.
package texture

import (
	"math"

	"fractal-perlin/internal/noise"
)

// HistogramBuckets is the number of equal-width buckets in Stats.Histogram.
const HistogramBuckets = 10

// Settings are the fractal parameters used for every sample of a texture.
type Settings struct {
	Resolution  int
	Frequency   float64
	Octaves     float64
	Lacunarity  float64
	Persistence float64
	Gradient    Gradient // nil renders grayscale
}

// DefaultSettings returns a 512x512 two-octave texture at frequency 5.
func DefaultSettings() Settings {
	return Settings{
		Resolution:  512,
		Frequency:   5,
		Octaves:     2,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

// Window is the region of noise space a texture covers. Pixel (x, y)
// samples (OriginX + x*Step, OriginY + y*Step).
type Window struct {
	OriginX, OriginY float64
	Step             float64
	Width, Height    int
}

// Window covers the unit square at the configured resolution.
func (s Settings) Window() Window {
	res := s.Resolution
	if res < 1 {
		res = 1
	}
	return Window{
		Step:   1 / float64(res),
		Width:  res,
		Height: res,
	}
}

// Texture holds normalized samples and their colors, row-major (x + y*Width).
type Texture struct {
	Width, Height int
	Values        []float64
	Pix           []Color
}

// Generate samples gen over w. Fractal2D output is rescaled from [-1,1] to
// [0,1] and clamped before color mapping.
func Generate(gen *noise.Generator, s Settings, w Window) *Texture {
	if w.Width < 0 {
		w.Width = 0
	}
	if w.Height < 0 {
		w.Height = 0
	}
	t := &Texture{
		Width:  w.Width,
		Height: w.Height,
		Values: make([]float64, w.Width*w.Height),
		Pix:    make([]Color, w.Width*w.Height),
	}
	for y := 0; y < w.Height; y++ {
		fy := w.OriginY + float64(y)*w.Step
		for x := 0; x < w.Width; x++ {
			fx := w.OriginX + float64(x)*w.Step
			v := gen.Fractal2D(fx, fy, s.Frequency, s.Octaves, s.Lacunarity, s.Persistence)
			v = clamp01(v*0.5 + 0.5)

			i := x + y*w.Width
			t.Values[i] = v
			t.Pix[i] = s.Gradient.At(v)
		}
	}
	return t
}

// At returns the color at (x, y), or black outside the texture.
func (t *Texture) At(x, y int) Color {
	if x < 0 || y < 0 || x >= t.Width || y >= t.Height {
		return Color{}
	}
	return t.Pix[x+y*t.Width]
}

// Stats summarizes the distribution of normalized samples.
type Stats struct {
	Min, Max, Mean float64
	Histogram      [HistogramBuckets]int
}

// Stats computes min, max, mean and a histogram over all samples.
// NaN samples are skipped; a texture of only NaN yields zero Stats.
func (t *Texture) Stats() Stats {
	var st Stats
	st.Min = math.Inf(1)
	st.Max = math.Inf(-1)
	var sum float64
	n := 0
	for _, v := range t.Values {
		if math.IsNaN(v) {
			continue
		}
		n++
		st.Min = math.Min(st.Min, v)
		st.Max = math.Max(st.Max, v)
		sum += v
		b := int(clamp01(v) * HistogramBuckets)
		if b >= HistogramBuckets {
			b = HistogramBuckets - 1
		}
		st.Histogram[b]++
	}
	if n == 0 {
		return Stats{}
	}
	st.Mean = sum / float64(n)
	return st
}
