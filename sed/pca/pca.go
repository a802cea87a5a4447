package pca

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-sed/sed/spectrum"
)

var (
	// ErrNoSpectra indicates a fit attempted over an empty corpus.
	ErrNoSpectra = errors.New("pca: no input spectra")
	// ErrDimensionMismatch indicates spectra or model fields that do not
	// share a common grid.
	ErrDimensionMismatch = errors.New("pca: dimension mismatch")
	// ErrComponentCount indicates a component count outside the valid range.
	ErrComponentCount = errors.New("pca: invalid component count")
	// ErrDuplicateName indicates two input spectra sharing a name.
	ErrDuplicateName = errors.New("pca: duplicate spectrum name")
	// ErrUnknownName indicates a spectrum name absent from the model.
	ErrUnknownName = errors.New("pca: unknown spectrum name")
)

// rankEps discards Gram eigenvalues below this fraction of the largest,
// which removes the numerically-null directions of a rank-deficient corpus.
const rankEps = 1e-12

// Model is an immutable principal-component basis over a wavelength grid:
// a mean spectrum, orthonormal eigenspectra ordered by descending explained
// variance, and per-spectrum projection coefficients. Treat all fields as
// read-only after Fit or NewModel.
type Model struct {
	Wavelen           []float64
	Mean              []float64
	Eigenspectra      [][]float64
	Coefficients      map[string][]float64
	ExplainedVariance []float64

	names []string
}

// NewModel assembles a Model from its parts, validating the shape
// invariants: mean and every eigenspectrum match the grid length, every
// coefficient vector matches the component count, and explained variance
// (when present) has one entry per component. The parts are not copied.
func NewModel(wavelen, mean []float64, eigenspectra [][]float64, coefficients map[string][]float64, explained []float64) (*Model, error) {
	if len(wavelen) == 0 || len(mean) != len(wavelen) {
		return nil, fmt.Errorf("%w: mean length %d, grid length %d", ErrDimensionMismatch, len(mean), len(wavelen))
	}
	for k, eig := range eigenspectra {
		if len(eig) != len(wavelen) {
			return nil, fmt.Errorf("%w: eigenspectrum %d length %d, grid length %d", ErrDimensionMismatch, k, len(eig), len(wavelen))
		}
	}
	if explained != nil && len(explained) != len(eigenspectra) {
		return nil, fmt.Errorf("%w: %d variance entries for %d components", ErrDimensionMismatch, len(explained), len(eigenspectra))
	}

	names := make([]string, 0, len(coefficients))
	for name, coeff := range coefficients {
		if len(coeff) != len(eigenspectra) {
			return nil, fmt.Errorf("%w: coefficients for %q have length %d, want %d", ErrDimensionMismatch, name, len(coeff), len(eigenspectra))
		}
		names = append(names, name)
	}
	sort.Strings(names)

	return &Model{
		Wavelen:           wavelen,
		Mean:              mean,
		Eigenspectra:      eigenspectra,
		Coefficients:      coefficients,
		ExplainedVariance: explained,
		names:             names,
	}, nil
}

// Names returns the spectrum names held by the model, sorted ascending.
func (m *Model) Names() []string {
	out := make([]string, len(m.names))
	copy(out, m.names)
	return out
}

// NumComponents returns the number of retained eigenspectra.
func (m *Model) NumComponents() int { return len(m.Eigenspectra) }

// Fit computes a principal-component basis over the given spectra.
//
// The common grid is the first spectrum's sampling restricted to window
// (bounds inclusive); every spectrum is resampled onto it and normalized
// to unit flux sum before the mean and eigenspectra are computed. Up to
// maxComponents directions are retained, ordered by descending explained
// variance; directions whose variance is numerically zero are dropped, so
// a rank-deficient corpus can yield fewer components than requested.
//
// maxComponents must lie in [1, min(len(specs), grid length)]; values
// outside that range are a configuration error, not clamped.
func Fit(specs []spectrum.Spectrum, window spectrum.Window, maxComponents int) (*Model, error) {
	if len(specs) == 0 {
		return nil, ErrNoSpectra
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	grid := window.Slice(specs[0].Wavelen)
	if len(grid) < 2 {
		return nil, fmt.Errorf("%w: window [%g, %g] misses the reference grid", ErrDimensionMismatch, window.Min, window.Max)
	}
	n, p := len(specs), len(grid)
	if maxComponents < 1 || maxComponents > min(n, p) {
		return nil, fmt.Errorf("%w: %d components requested for %d spectra over %d samples", ErrComponentCount, maxComponents, n, p)
	}

	names := make([]string, n)
	scaled := make([][]float64, n)
	seen := make(map[string]bool, n)
	for i, s := range specs {
		if seen[s.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		seen[s.Name] = true
		names[i] = s.Name

		rs, err := s.Resample(grid)
		if err != nil {
			return nil, fmt.Errorf("%w: spectrum %q does not cover the window grid: %v", ErrDimensionMismatch, s.Name, err)
		}
		sc, err := spectrum.Scale(rs.Flux)
		if err != nil {
			return nil, fmt.Errorf("pca: spectrum %q: %w", s.Name, err)
		}
		scaled[i] = sc
	}

	mean := make([]float64, p)
	for _, flux := range scaled {
		vecmath.AddBlockInPlace(mean, flux)
	}
	vecmath.ScaleBlockInPlace(mean, 1/float64(n))

	centered := make([][]float64, n)
	for i, flux := range scaled {
		c := make([]float64, p)
		for j := range c {
			c[j] = flux[j] - mean[j]
		}
		centered[i] = c
	}

	// Snapshot method: eigen-decompose the n-by-n Gram matrix instead of
	// the p-by-p covariance.
	gram := make([][]float64, n)
	for i := range gram {
		gram[i] = make([]float64, n)
	}
	trace := 0.0
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			g := vecmath.DotProduct(centered[i], centered[j])
			gram[i][j] = g
			gram[j][i] = g
		}
		trace += gram[i][i]
	}

	vals, vecs := jacobiEigen(gram)
	keep := 0
	for keep < maxComponents && vals[keep] > rankEps*math.Max(vals[0], 1e-300) {
		keep++
	}

	eigenspectra := make([][]float64, keep)
	explained := make([]float64, keep)
	tmp := make([]float64, p)
	for k := 0; k < keep; k++ {
		eig := make([]float64, p)
		for i := 0; i < n; i++ {
			vecmath.ScaleBlock(tmp, centered[i], vecs[k][i])
			vecmath.AddBlockInPlace(eig, tmp)
		}
		vecmath.ScaleBlockInPlace(eig, 1/math.Sqrt(vals[k]))
		orientPositive(eig)
		eigenspectra[k] = eig
		if trace > 0 {
			explained[k] = vals[k] / trace
		}
	}

	coefficients := make(map[string][]float64, n)
	for i, name := range names {
		coeff := make([]float64, keep)
		for k := 0; k < keep; k++ {
			coeff[k] = vecmath.DotProduct(centered[i], eigenspectra[k])
		}
		coefficients[name] = coeff
	}

	sortedNames := make([]string, n)
	copy(sortedNames, names)
	sort.Strings(sortedNames)

	return &Model{
		Wavelen:           grid,
		Mean:              mean,
		Eigenspectra:      eigenspectra,
		Coefficients:      coefficients,
		ExplainedVariance: explained,
		names:             sortedNames,
	}, nil
}

// Reconstruct rebuilds every spectrum from its first numComponents
// coefficients: mean + sum of coeff[k] * eigenspectrum[k]. The returned
// flux slices are fresh allocations keyed by spectrum name.
// numComponents zero yields the mean spectrum for every name.
func (m *Model) Reconstruct(numComponents int) (map[string][]float64, error) {
	if numComponents < 0 || numComponents > m.NumComponents() {
		return nil, fmt.Errorf("%w: %d requested, %d fitted", ErrComponentCount, numComponents, m.NumComponents())
	}

	out := make(map[string][]float64, len(m.names))
	for _, name := range m.names {
		out[name] = m.rebuild(m.Coefficients[name], numComponents)
	}
	return out, nil
}

// ReconstructOne rebuilds a single named spectrum from its first
// numComponents coefficients.
func (m *Model) ReconstructOne(name string, numComponents int) ([]float64, error) {
	if numComponents < 0 || numComponents > m.NumComponents() {
		return nil, fmt.Errorf("%w: %d requested, %d fitted", ErrComponentCount, numComponents, m.NumComponents())
	}
	coeff, ok := m.Coefficients[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownName, name)
	}
	return m.rebuild(coeff, numComponents), nil
}

func (m *Model) rebuild(coeff []float64, numComponents int) []float64 {
	flux := make([]float64, len(m.Mean))
	copy(flux, m.Mean)
	tmp := make([]float64, len(m.Mean))
	for k := 0; k < numComponents; k++ {
		vecmath.ScaleBlock(tmp, m.Eigenspectra[k], coeff[k])
		vecmath.AddBlockInPlace(flux, tmp)
	}
	return flux
}

// orientPositive flips the sign of eig so its largest-magnitude entry is
// positive. The first occurrence wins on exact ties.
func orientPositive(eig []float64) {
	maxAbs, maxVal := 0.0, 0.0
	for _, v := range eig {
		if a := math.Abs(v); a > maxAbs {
			maxAbs = a
			maxVal = v
		}
	}
	if maxVal < 0 {
		for i := range eig {
			eig[i] = -eig[i]
		}
	}
}
