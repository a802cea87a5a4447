package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"
)

// Grid returns n wavelengths start, start+1, ..., start+n-1.
func Grid(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

// Constant returns a flux vector of length n filled with value.
func Constant(value float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = value
	}
	return out
}

// RampFlux builds a synthetic two-segment flux curve of length n: a flat
// baseline of 100, plus slope1*k over samples [100, 650) and slope2*k over
// samples [650, 1200), with k counting from zero inside each segment.
// Two of these with different slopes make a rank-one corpus around the
// mean, which is the standard fixture for basis-fit tests.
func RampFlux(n int, slope1, slope2 float64) []float64 {
	out := Constant(100, n)
	for k := 0; k < 550 && 100+k < n; k++ {
		out[100+k] += slope1 * float64(k)
	}
	for k := 0; k < 550 && 650+k < n; k++ {
		out[650+k] += slope2 * float64(k)
	}
	return out
}

// WriteSpectrumFile writes a two-column (wavelength, flux) text file with a
// header line, the on-disk format the corpus loader reads.
func WriteSpectrumFile(t *testing.T, path string, wavelen, flux []float64) {
	t.Helper()
	if len(wavelen) != len(flux) {
		t.Fatalf("fixture length mismatch: %d vs %d", len(wavelen), len(flux))
	}

	var b strings.Builder
	b.WriteString("# Lambda Flux\n")
	for i := range wavelen {
		fmt.Fprintf(&b, "%g %g\n", wavelen[i], flux[i])
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write fixture %s: %v", path, err)
	}
}
