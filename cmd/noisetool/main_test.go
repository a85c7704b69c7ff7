package main

import (
	"bytes"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fractal-perlin/internal/noise"
)

func runCmd(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := runCmd(t)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Usage: noisetool")

	code, _, stderr = runCmd(t, "bogus")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Unknown command: bogus")

	code, stdout, _ := runCmd(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Commands:")
}

func TestSample(t *testing.T) {
	gen := noise.New(42)

	tests := []struct {
		name string
		args []string
		want float64
	}{
		{"1d base", []string{"-dim", "1", "-base", "-x", "0.37", "-freq", "1"}, gen.Noise1D(0.37, 1)},
		{"1d fractal", []string{"-dim", "1", "-x", "0.37", "-freq", "1", "-octaves", "4"}, gen.Fractal1D(0.37, 1, 4, 2, 0.5)},
		{"2d base", []string{"-base", "-x", "0.3", "-y", "0.8", "-freq", "3"}, gen.Noise2D(0.3, 0.8, 3)},
		{"2d fractal", []string{"-x", "0.3", "-y", "0.8"}, gen.Fractal2D(0.3, 0.8, 5, 2, 2, 0.5)},
		{"lattice point", []string{"-dim", "1", "-base", "-x", "1", "-freq", "1"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"sample", "-seed", "42"}, tt.args...)
			code, stdout, stderr := runCmd(t, args...)
			require.Equal(t, 0, code, stderr)

			got, err := strconv.ParseFloat(strings.TrimSpace(stdout), 64)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSampleBadDim(t *testing.T) {
	code, _, stderr := runCmd(t, "sample", "-seed", "1", "-dim", "3")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid -dim 3")
}

func TestViz(t *testing.T) {
	code, stdout, stderr := runCmd(t, "viz", "-seed", "7", "-size", "12x6", "-gradient", "terrain")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, 12, strings.Count(lines[0], "▀"))
}

func TestVizErrors(t *testing.T) {
	code, _, stderr := runCmd(t, "viz", "-seed", "7", "-size", "12")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "expected WxH")

	code, _, stderr = runCmd(t, "viz", "-seed", "7", "-gradient", "neon")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown gradient "neon"`)
}

func TestStats(t *testing.T) {
	code, stdout, stderr := runCmd(t, "stats", "-seed", "3", "-size", "32x16", "-octaves", "3")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Samples: 512 (32x16)")
	assert.Contains(t, stdout, "Distribution:")
	assert.Equal(t, 10, strings.Count(stdout, "%)"))
}

func TestTable(t *testing.T) {
	code, stdout, _ := runCmd(t, "table", "-canonical")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	require.Len(t, lines, 16)
	assert.True(t, strings.HasPrefix(lines[0], "151,160,137, 91"))

	code, seeded, _ := runCmd(t, "table", "-seed", "42")
	require.Equal(t, 0, code)
	want := noise.New(42).Table()
	first := strings.Split(strings.Split(seeded, "\n")[0], ",")
	for i, field := range first {
		v, err := strconv.Atoi(strings.TrimSpace(field))
		require.NoError(t, err)
		assert.Equal(t, int(want[i]), v)
	}
}

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    int
		wantErr bool
	}{
		{"80x40", 80, 40, false},
		{"1x1", 1, 1, false},
		{"0x5", 0, 0, true},
		{"5x", 0, 0, true},
		{"abc", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.w, w)
		assert.Equal(t, tt.h, h)
	}
}

func TestNaNFrequencyDoesNotCrash(t *testing.T) {
	for _, cmd := range []string{"viz", "stats"} {
		t.Run(cmd, func(t *testing.T) {
			var code int
			var stderr string
			require.NotPanics(t, func() {
				code, _, stderr = runCmd(t, cmd, "-seed", "1", "-size", "4x4", "-freq", "NaN", "-gradient", "terrain")
			})
			assert.Equal(t, 0, code, stderr)
		})
	}

	code, stdout, _ := runCmd(t, "sample", "-seed", "1", "-freq", "NaN")
	assert.Equal(t, 0, code)
	assert.Equal(t, "NaN", strings.TrimSpace(stdout))
}

func TestZeroSeedUsesTimeSeed(t *testing.T) {
	code, stdout, stderr := runCmd(t, "table", "-seed", "0")
	require.Equal(t, 0, code)
	require.Contains(t, stderr, "Using seed ")

	seed, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(stderr, "Using seed ")), 10, 64)
	require.NoError(t, err)
	assert.NotZero(t, seed)

	_, want, _ := runCmd(t, "table", "-seed", strconv.FormatInt(seed, 10))
	assert.Equal(t, want, stdout)
}
