// Package preview holds the per-viewer state of the interactive noise
// explorer: which generator is shown, its fractal settings and the camera.
package preview

import (
	"fmt"
	"math"

	"fractal-perlin/internal/noise"
	"fractal-perlin/internal/texture"
)

const (
	// PixelsPerUnit is how many texture pixels span one unit of noise space.
	PixelsPerUnit = 64
	// PanPixels is how far one pan step moves the camera.
	PanPixels = 8

	zoomFactor = 1.25
	minFreq    = 0.05
	maxFreq    = 200

	minOctaves = 1
	maxOctaves = 8

	persistenceStep = 0.05
	lacunarityStep  = 0.25
	minLacunarity   = 1
	maxLacunarity   = 4
)

// View is one viewer's camera over a noise generator. Not safe for
// concurrent use; each session owns its own View.
type View struct {
	gen      *noise.Generator
	settings texture.Settings
	gradient int // index into texture.GradientNames()

	OriginX, OriginY float64
}

// NewView creates a view at the origin with the default fractal settings.
func NewView(seed int64) *View {
	s := texture.DefaultSettings()
	s.Resolution = PixelsPerUnit
	v := &View{
		gen:      noise.New(seed),
		settings: s,
	}
	v.applyGradient()
	return v
}

// Generator returns the generator currently shown.
func (v *View) Generator() *noise.Generator {
	return v.gen
}

// Settings returns the current fractal settings.
func (v *View) Settings() texture.Settings {
	return v.settings
}

// GradientName returns the name of the active color gradient.
func (v *View) GradientName() string {
	return texture.GradientNames()[v.gradient]
}

func (v *View) applyGradient() {
	g, err := texture.ParseGradient(v.GradientName())
	if err != nil {
		// names come from the same registry
		panic(err)
	}
	v.settings.Gradient = g
}

// Apply updates the view for a. It reports whether a redraw is needed.
func (v *View) Apply(a Action) bool {
	step := float64(PanPixels) / PixelsPerUnit
	s := &v.settings

	switch a {
	case ActionUp:
		v.OriginY -= step
	case ActionDown:
		v.OriginY += step
	case ActionLeft:
		v.OriginX -= step
	case ActionRight:
		v.OriginX += step
	case ActionZoomIn:
		s.Frequency = math.Max(minFreq, s.Frequency/zoomFactor)
	case ActionZoomOut:
		s.Frequency = math.Min(maxFreq, s.Frequency*zoomFactor)
	case ActionMoreOctaves:
		s.Octaves = math.Min(maxOctaves, s.Octaves+1)
	case ActionFewerOctaves:
		s.Octaves = math.Max(minOctaves, s.Octaves-1)
	case ActionMorePersistence:
		s.Persistence = roundStep(math.Min(1-persistenceStep, s.Persistence+persistenceStep), persistenceStep)
	case ActionLessPersistence:
		s.Persistence = roundStep(math.Max(persistenceStep, s.Persistence-persistenceStep), persistenceStep)
	case ActionMoreLacunarity:
		s.Lacunarity = math.Min(maxLacunarity, s.Lacunarity+lacunarityStep)
	case ActionLessLacunarity:
		s.Lacunarity = math.Max(minLacunarity, s.Lacunarity-lacunarityStep)
	case ActionCycleGradient:
		v.gradient = (v.gradient + 1) % len(texture.GradientNames())
		v.applyGradient()
	case ActionReseed:
		v.gen = noise.New(v.gen.Seed() + 1)
	default:
		return false
	}
	return true
}

func roundStep(x, step float64) float64 {
	return math.Round(x/step) * step
}

// Window returns the noise-space region shown on a canvas of w x h pixels.
func (v *View) Window(w, h int) texture.Window {
	return texture.Window{
		OriginX: v.OriginX,
		OriginY: v.OriginY,
		Step:    1.0 / PixelsPerUnit,
		Width:   w,
		Height:  h,
	}
}

// Texture samples the view onto a canvas of w x h pixels.
func (v *View) Texture(w, h int) *texture.Texture {
	return texture.Generate(v.gen, v.settings, v.Window(w, h))
}

// HUD returns the status lines shown under the canvas.
func (v *View) HUD() []string {
	s := v.settings
	return []string{
		fmt.Sprintf(" seed %d  freq %.2f  octaves %.0f  lacunarity %.2f  persistence %.2f  %s  (%.2f, %.2f)",
			v.gen.Seed(), s.Frequency, s.Octaves, s.Lacunarity, s.Persistence, v.GradientName(), v.OriginX, v.OriginY),
		" WASD/arrows pan  +/- zoom  o/O octaves  p/P persistence  l/L lacunarity  c colors  r reseed  q quit",
	}
}
