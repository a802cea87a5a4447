package spectrum

import (
	"errors"
	"math"
)

var (
	// ErrLengthMismatch indicates wavelength and flux slices of unequal length.
	ErrLengthMismatch = errors.New("spectrum: wavelength and flux length mismatch")
	// ErrTooShort indicates a spectrum with fewer than two samples.
	ErrTooShort = errors.New("spectrum: need at least two samples")
	// ErrNotIncreasing indicates a wavelength grid that is not strictly increasing.
	ErrNotIncreasing = errors.New("spectrum: wavelengths not strictly increasing")
	// ErrInvalidWindow indicates a window with min >= max.
	ErrInvalidWindow = errors.New("spectrum: invalid wavelength window")
)

// Spectrum is one sampled flux-vs-wavelength curve. Wavelen is strictly
// increasing and index-aligned with Flux. Records are immutable after
// construction.
type Spectrum struct {
	Name    string
	Wavelen []float64
	Flux    []float64
}

// New constructs a validated Spectrum. The input slices are copied, so the
// caller may reuse its buffers afterwards.
func New(name string, wavelen, flux []float64) (Spectrum, error) {
	if len(wavelen) != len(flux) {
		return Spectrum{}, ErrLengthMismatch
	}
	if len(wavelen) < 2 {
		return Spectrum{}, ErrTooShort
	}
	if !strictlyIncreasing(wavelen) {
		return Spectrum{}, ErrNotIncreasing
	}

	s := Spectrum{
		Name:    name,
		Wavelen: make([]float64, len(wavelen)),
		Flux:    make([]float64, len(flux)),
	}
	copy(s.Wavelen, wavelen)
	copy(s.Flux, flux)
	return s, nil
}

// Len returns the number of samples.
func (s Spectrum) Len() int { return len(s.Wavelen) }

// Window is an inclusive wavelength sub-range [Min, Max].
type Window struct {
	Min float64
	Max float64
}

// Validate reports whether the window bounds are ordered and finite.
func (w Window) Validate() error {
	if math.IsNaN(w.Min) || math.IsNaN(w.Max) || w.Min >= w.Max {
		return ErrInvalidWindow
	}
	return nil
}

// Slice returns a copy of the wavelengths in wavelen that fall inside the
// window, bounds inclusive. The input must be sorted ascending; the result
// is then a contiguous sub-grid. Returns nil when nothing falls inside.
func (w Window) Slice(wavelen []float64) []float64 {
	lo := 0
	for lo < len(wavelen) && wavelen[lo] < w.Min {
		lo++
	}
	hi := len(wavelen)
	for hi > lo && wavelen[hi-1] > w.Max {
		hi--
	}
	if hi == lo {
		return nil
	}

	out := make([]float64, hi-lo)
	copy(out, wavelen[lo:hi])
	return out
}

func strictlyIncreasing(x []float64) bool {
	for i := 1; i < len(x); i++ {
		if !(x[i] > x[i-1]) {
			return false
		}
	}
	return true
}
