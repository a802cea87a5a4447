// Package persist stores fitted basis models as a directory of plain
// text files and reads them back without loss.
//
// Layout under the model directory:
//
//	wavelengths.dat                  common grid, one float per line
//	meanSpectrum.dat                 aligned with wavelengths.dat
//	explainedVariance.dat            one ratio per retained component
//	eigenspectra/eigenspectra_<k>.dat  component k, descending variance
//	components/<name>.dat            coefficient vector for one spectrum
//
// Floats are written with strconv's shortest round-trip formatting, so
// Load(Save(m)) reproduces m bit for bit.
package persist
