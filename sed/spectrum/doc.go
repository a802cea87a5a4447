// Package spectrum defines the sampled flux-vs-wavelength data model and
// the pure numeric operations applied to single spectra before fitting.
//
// Core operations:
//
//   - [New]:               validated construction of a Spectrum record
//   - [Scale]:             normalize a flux vector to unit sum
//   - [Spectrum.Resample]: piecewise-linear re-gridding onto a target
//     wavelength grid
//   - [Window.Slice]:      inclusive wavelength-window restriction
//
// Spectrum records are immutable once constructed; every operation
// returns a new record or slice and never mutates its input.
package spectrum
