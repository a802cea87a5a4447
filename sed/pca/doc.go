// Package pca reduces a corpus of normalized model spectra to a compact
// linear basis: a mean spectrum plus orthonormal eigenspectra ordered by
// descending explained variance, with one coefficient vector per input
// spectrum.
//
// [Fit] produces an immutable [Model]; [Model.Reconstruct] rebuilds
// spectra from a truncated coefficient set. The decomposition uses the
// snapshot method: the eigenproblem is solved on the n-by-n Gram matrix
// of mean-centered spectra (n = corpus size), which is far smaller than
// the wavelength dimension for realistic corpora.
//
// Sign convention: each eigenspectrum is oriented so that its
// largest-magnitude entry is positive, making fitted output reproducible
// across platforms.
//
// Binning spectra into color-color clusters and fitting one basis per
// bin is a possible extension; this package computes a single global
// basis and leaves clustering to callers, who can fit one Model per
// group.
package pca
