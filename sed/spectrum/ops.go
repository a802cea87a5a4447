package spectrum

import (
	"errors"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"
)

var (
	// ErrZeroSum indicates a flux vector whose sum is zero or non-finite,
	// so unit-sum normalization is undefined.
	ErrZeroSum = errors.New("spectrum: flux sum is zero or non-finite")
	// ErrOutOfRange indicates a resampling target outside the covered
	// wavelength range. Extrapolation is never performed.
	ErrOutOfRange = errors.New("spectrum: target wavelengths outside source range")
)

// Scale normalizes flux so its elements sum to one. The result sums to 1
// within floating tolerance. Returns ErrZeroSum when the flux sum is zero,
// NaN, or infinite.
func Scale(flux []float64) ([]float64, error) {
	sum := vecmath.Sum(flux)
	if sum == 0 || math.IsNaN(sum) || math.IsInf(sum, 0) {
		return nil, ErrZeroSum
	}

	out := make([]float64, len(flux))
	vecmath.ScaleBlock(out, flux, 1/sum)
	return out, nil
}

// Resample interpolates the spectrum onto target and returns a new record
// with the same name. Interpolation is piecewise-linear, which is
// deterministic and monotone between samples.
//
// Every target wavelength must lie within [s.Wavelen[0], s.Wavelen[last]];
// targets outside that range return ErrOutOfRange rather than clamping or
// extrapolating. The target grid must be strictly increasing.
func (s Spectrum) Resample(target []float64) (Spectrum, error) {
	if len(s.Wavelen) < 2 || len(target) < 2 {
		return Spectrum{}, ErrTooShort
	}
	if !strictlyIncreasing(target) {
		return Spectrum{}, ErrNotIncreasing
	}
	if target[0] < s.Wavelen[0] || target[len(target)-1] > s.Wavelen[len(s.Wavelen)-1] {
		return Spectrum{}, ErrOutOfRange
	}

	out := Spectrum{
		Name:    s.Name,
		Wavelen: make([]float64, len(target)),
		Flux:    make([]float64, len(target)),
	}
	copy(out.Wavelen, target)

	for i, t := range target {
		out.Flux[i] = s.interpolate(t)
	}
	return out, nil
}

// interpolate evaluates the piecewise-linear curve at t, which must be
// inside the sampled range.
func (s Spectrum) interpolate(t float64) float64 {
	j := sort.SearchFloat64s(s.Wavelen, t)
	if j < len(s.Wavelen) && s.Wavelen[j] == t {
		return s.Flux[j]
	}

	// t lies strictly between samples j-1 and j.
	x0, x1 := s.Wavelen[j-1], s.Wavelen[j]
	y0, y1 := s.Flux[j-1], s.Flux[j]
	frac := (t - x0) / (x1 - x0)
	return y0 + frac*(y1-y0)
}
