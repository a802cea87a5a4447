// Package colors turns reconstructed spectra into photometric colors.
//
// Magnitude computation itself lives behind the [Photometer] interface so
// this package stays decoupled from any bandpass library; [Derive] only
// reconstructs, collects magnitudes, and differences adjacent filters.
package colors
