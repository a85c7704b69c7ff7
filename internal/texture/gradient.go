package texture

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Color is an opaque 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// Lerp blends c toward o by alpha in [0,1].
func (c Color) Lerp(o Color, alpha float64) Color {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*alpha + 0.5)
	}
	return Color{R: mix(c.R, o.R), G: mix(c.G, o.G), B: mix(c.B, o.B)}
}

// Gray returns the grayscale color for v in [0,1].
func Gray(v float64) Color {
	l := uint8(clamp01(v)*255 + 0.5)
	return Color{R: l, G: l, B: l}
}

// Gradient is an ordered list of evenly spaced color stops.
type Gradient []Color

// At maps v in [0,1] onto the gradient by blending the two nearest stops.
// Values outside [0,1] are clamped. An empty gradient falls back to gray.
func (g Gradient) At(v float64) Color {
	switch len(g) {
	case 0:
		return Gray(v)
	case 1:
		return g[0]
	}
	scaled := clamp01(v) * float64(len(g)-1)
	i := int(scaled)
	if i >= len(g)-1 {
		return g[len(g)-1]
	}
	return g[i].Lerp(g[i+1], scaled-float64(i))
}

// Built-in gradients, selectable by name.
var (
	GrayGradient = Gradient{{0, 0, 0}, {255, 255, 255}}

	TerrainGradient = Gradient{
		{20, 40, 110},   // deep water
		{40, 90, 170},   // shallow water
		{210, 200, 140}, // sand
		{70, 150, 60},   // grass
		{40, 100, 40},   // forest
		{120, 110, 100}, // rock
		{245, 245, 250}, // snow
	}

	HeatGradient = Gradient{
		{0, 0, 0},
		{120, 0, 20},
		{230, 60, 0},
		{255, 200, 40},
		{255, 255, 230},
	}
)

var gradients = map[string]Gradient{
	"gray":    GrayGradient,
	"terrain": TerrainGradient,
	"heat":    HeatGradient,
}

// GradientNames returns the built-in gradient names in sorted order.
func GradientNames() []string {
	names := make([]string, 0, len(gradients))
	for name := range gradients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseGradient looks up a built-in gradient by name.
func ParseGradient(name string) (Gradient, error) {
	g, ok := gradients[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown gradient %q (available: %s)", name, strings.Join(GradientNames(), ", "))
	}
	return g, nil
}

// clamp01 maps NaN to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
