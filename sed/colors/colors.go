package colors

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-sed/sed/pca"
)

var (
	// ErrFewFilters indicates fewer than two filters, which yields no colors.
	ErrFewFilters = errors.New("colors: need at least two filters")
	// ErrMagnitudeCount indicates a photometer that returned the wrong
	// number of magnitudes for the requested filters.
	ErrMagnitudeCount = errors.New("colors: magnitude count does not match filters")
)

// Photometer computes one magnitude per named filter for a flux vector
// co-registered to the given wavelength grid, in the declared filter
// order. Implementations own all photometric semantics (bandpass curves,
// magnitude system); this package treats them as opaque.
type Photometer interface {
	Magnitudes(wavelen, flux []float64, filters []string) ([]float64, error)
}

// Derive reconstructs every spectrum in the model from its first
// numComponents coefficients, obtains per-filter magnitudes from phot,
// and returns adjacent-filter colors keyed by spectrum name:
// colors[i] = mag(filters[i]) - mag(filters[i+1]).
func Derive(model *pca.Model, numComponents int, phot Photometer, filters []string) (map[string][]float64, error) {
	if len(filters) < 2 {
		return nil, ErrFewFilters
	}

	rebuilt, err := model.Reconstruct(numComponents)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]float64, len(rebuilt))
	for _, name := range model.Names() {
		mags, err := phot.Magnitudes(model.Wavelen, rebuilt[name], filters)
		if err != nil {
			return nil, fmt.Errorf("colors: spectrum %q: %w", name, err)
		}
		if len(mags) != len(filters) {
			return nil, fmt.Errorf("%w: got %d for %d filters (spectrum %q)", ErrMagnitudeCount, len(mags), len(filters), name)
		}

		c := make([]float64, len(filters)-1)
		for i := range c {
			c[i] = mags[i] - mags[i+1]
		}
		out[name] = c
	}
	return out, nil
}
