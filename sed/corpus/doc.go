// Package corpus loads raw model spectra from a directory tree of
// two-column (wavelength, flux) text files.
//
// Files that cannot be parsed into a valid spectrum are skipped, not
// fatal: [Load] returns one [Skip] record per rejected file so callers can
// log or inspect them. Only an entirely empty corpus is an error. This
// keeps a heterogeneous spectra directory usable without letting a bad
// corpus fail silently.
package corpus
