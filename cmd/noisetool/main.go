package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"fractal-perlin/internal/noise"
	"fractal-perlin/internal/render"
	"fractal-perlin/internal/texture"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		printUsage(stderr)
		return 1
	}

	cmd, rest := args[0], args[1:]
	var err error
	switch cmd {
	case "sample":
		err = runSample(rest, stdout, stderr)
	case "viz":
		err = runViz(rest, stdout, stderr)
	case "stats":
		err = runStats(rest, stdout, stderr)
	case "table":
		err = runTable(rest, stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		printUsage(stderr)
		return 1
	}
	if err != nil {
		if err != flag.ErrHelp {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `Usage: noisetool <command> [flags]

Commands:
  sample   Print the noise value at one coordinate
  viz      Render a fractal noise texture as truecolor blocks
  stats    Show the value distribution of a texture
  table    Print the shuffled permutation table for a seed

Run "noisetool <command> -h" for the flags of a command.`)
}

// noiseFlags are the generator and fractal parameters shared by commands.
type noiseFlags struct {
	seed        *int64
	frequency   *float64
	octaves     *float64
	lacunarity  *float64
	persistence *float64
}

func addNoiseFlags(fs *flag.FlagSet) noiseFlags {
	d := texture.DefaultSettings()
	return noiseFlags{
		seed:        fs.Int64("seed", 0, "random seed (0 picks a time based seed, so 0 itself cannot be requested)"),
		frequency:   fs.Float64("freq", d.Frequency, "base frequency"),
		octaves:     fs.Float64("octaves", d.Octaves, "octave count (fractional counts round up)"),
		lacunarity:  fs.Float64("lacunarity", d.Lacunarity, "frequency growth per octave"),
		persistence: fs.Float64("persistence", d.Persistence, "amplitude decay per octave"),
	}
}

func (f noiseFlags) generator(stderr io.Writer) *noise.Generator {
	return newGenerator(f.seed, stderr)
}

func (f noiseFlags) settings() texture.Settings {
	s := texture.DefaultSettings()
	s.Frequency = *f.frequency
	s.Octaves = *f.octaves
	s.Lacunarity = *f.lacunarity
	s.Persistence = *f.persistence
	return s
}

// --- sample ---

func runSample(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("sample", flag.ContinueOnError)
	fs.SetOutput(stderr)
	nf := addNoiseFlags(fs)
	dim := fs.Int("dim", 2, "dimensions (1 or 2)")
	x := fs.Float64("x", 0, "x coordinate")
	y := fs.Float64("y", 0, "y coordinate (2D only)")
	base := fs.Bool("base", false, "single octave base noise, ignoring fractal flags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dim != 1 && *dim != 2 {
		return fmt.Errorf("invalid -dim %d (expected 1 or 2)", *dim)
	}

	gen := nf.generator(stderr)
	var v float64
	switch {
	case *dim == 1 && *base:
		v = gen.Noise1D(*x, *nf.frequency)
	case *dim == 1:
		v = gen.Fractal1D(*x, *nf.frequency, *nf.octaves, *nf.lacunarity, *nf.persistence)
	case *base:
		v = gen.Noise2D(*x, *y, *nf.frequency)
	default:
		v = gen.Fractal2D(*x, *y, *nf.frequency, *nf.octaves, *nf.lacunarity, *nf.persistence)
	}
	fmt.Fprintln(stdout, strconv.FormatFloat(v, 'g', -1, 64))
	return nil
}

// --- viz / stats ---

// textureFlags adds the flags that pick a texture region.
func textureFlags(fs *flag.FlagSet) (nf noiseFlags, size, gradient *string, ox, oy *float64) {
	nf = addNoiseFlags(fs)
	size = fs.String("size", "64x64", "texture size in pixels as WxH")
	gradient = fs.String("gradient", "gray", "color gradient ("+strings.Join(texture.GradientNames(), ", ")+")")
	ox = fs.Float64("ox", 0, "x origin in noise space")
	oy = fs.Float64("oy", 0, "y origin in noise space")
	return
}

func buildTexture(fs *flag.FlagSet, args []string, stderr io.Writer) (*texture.Texture, error) {
	nf, size, gradient, ox, oy := textureFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	w, h, err := parseSize(*size)
	if err != nil {
		return nil, err
	}
	g, err := texture.ParseGradient(*gradient)
	if err != nil {
		return nil, err
	}

	s := nf.settings()
	s.Resolution = max(w, h)
	s.Gradient = g
	win := s.Window()
	win.Width, win.Height = w, h
	win.OriginX, win.OriginY = *ox, *oy

	return texture.Generate(nf.generator(stderr), s, win), nil
}

func runViz(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("viz", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tex, err := buildTexture(fs, args, stderr)
	if err != nil {
		return err
	}
	_, err = io.WriteString(stdout, render.Frame(tex))
	return err
}

func runStats(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	fs.SetOutput(stderr)
	tex, err := buildTexture(fs, args, stderr)
	if err != nil {
		return err
	}

	st := tex.Stats()
	total := len(tex.Values)
	fmt.Fprintf(stdout, "Samples: %d (%dx%d)\n", total, tex.Width, tex.Height)
	fmt.Fprintf(stdout, "Min:     %.4f\n", st.Min)
	fmt.Fprintf(stdout, "Max:     %.4f\n", st.Max)
	fmt.Fprintf(stdout, "Mean:    %.4f\n", st.Mean)
	fmt.Fprintf(stdout, "\nDistribution:\n")
	for i, c := range st.Histogram {
		lo := float64(i) / texture.HistogramBuckets
		hi := float64(i+1) / texture.HistogramBuckets
		pct := 0.0
		if total > 0 {
			pct = float64(c) / float64(total) * 100
		}
		fmt.Fprintf(stdout, "  %.1f-%.1f %6d (%5.1f%%) %s\n", lo, hi, c, pct, strings.Repeat("#", int(pct/2)))
	}
	return nil
}

// --- table ---

func runTable(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	fs.SetOutput(stderr)
	seed := fs.Int64("seed", 0, "random seed (0 picks a time based seed, so 0 itself cannot be requested)")
	canonical := fs.Bool("canonical", false, "print the unshuffled reference table")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var table noise.PermutationTable
	if *canonical {
		table = noise.Canonical()
	} else {
		table = newGenerator(seed, stderr).Table()
	}

	for i, v := range table {
		fmt.Fprintf(stdout, "%3d", v)
		if i%16 == 15 {
			fmt.Fprintln(stdout)
		} else {
			fmt.Fprint(stdout, ",")
		}
	}
	return nil
}

// newGenerator builds a generator for *seed, or a time seeded one when
// *seed is 0, writing the chosen seed back.
func newGenerator(seed *int64, stderr io.Writer) *noise.Generator {
	if *seed != 0 {
		return noise.New(*seed)
	}
	gen := noise.NewFromTime()
	*seed = gen.Seed()
	fmt.Fprintf(stderr, "Using seed %d\n", *seed)
	return gen
}

func parseSize(s string) (int, int, error) {
	parts := strings.SplitN(s, "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q (expected WxH)", s)
	}
	w, err := strconv.Atoi(parts[0])
	if err != nil || w < 1 {
		return 0, 0, fmt.Errorf("invalid width %q (minimum 1)", parts[0])
	}
	h, err := strconv.Atoi(parts[1])
	if err != nil || h < 1 {
		return 0, 0, fmt.Errorf("invalid height %q (minimum 1)", parts[1])
	}
	return w, h, nil
}
