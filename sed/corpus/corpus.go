package corpus

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-sed/sed/spectrum"
)

var (
	// ErrEmpty indicates that no usable spectrum was found in the directory.
	ErrEmpty = errors.New("corpus: no usable spectra found")
	// ErrLeadingNaN indicates a spectrum whose first flux value is NaN.
	ErrLeadingNaN = errors.New("corpus: leading flux value is NaN")
	// ErrNoColumns indicates a data line without two numeric columns.
	ErrNoColumns = errors.New("corpus: line is not a two-column float record")
)

// Skip records one file rejected during loading and the reason.
type Skip struct {
	Path string
	Err  error
}

type config struct {
	exts map[string]bool
}

// Option configures the loader.
type Option func(*config)

// WithExtensions restricts loading to files with one of the given
// extensions (e.g. ".dat", ".txt"). Matching is case-insensitive.
// By default every regular file is considered.
func WithExtensions(exts ...string) Option {
	return func(cfg *config) {
		cfg.exts = make(map[string]bool, len(exts))
		for _, e := range exts {
			cfg.exts[strings.ToLower(e)] = true
		}
	}
}

// Load walks dir recursively and parses every candidate file as a
// two-column (wavelength, flux) table. One leading header line is
// tolerated and `#` comment lines are ignored. The spectrum name is the
// file's base name without extension.
//
// Files that fail to parse, have a non-increasing wavelength grid, or
// start with a NaN flux value are skipped and reported in the returned
// Skip slice. Load fails with ErrEmpty when nothing usable remains.
// Spectra are returned sorted by source path so results are reproducible
// across platforms.
func Load(dir string, opts ...Option) ([]spectrum.Spectrum, []Skip, error) {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	type entry struct {
		path string
		spec spectrum.Spectrum
	}
	var (
		entries []entry
		skipped []Skip
	)

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if cfg.exts != nil && !cfg.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		spec, perr := readFile(path)
		if perr != nil {
			skipped = append(skipped, Skip{Path: path, Err: perr})
			return nil
		}
		entries = append(entries, entry{path: path, spec: spec})
		return nil
	})
	if err != nil {
		return nil, skipped, fmt.Errorf("corpus: walk %s: %w", dir, err)
	}
	if len(entries) == 0 {
		return nil, skipped, fmt.Errorf("%w in %s", ErrEmpty, dir)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].path < entries[j].path })
	specs := make([]spectrum.Spectrum, len(entries))
	for i, e := range entries {
		specs[i] = e.spec
	}
	return specs, skipped, nil
}

// readFile parses one spectrum file. Any returned error means the file is
// skipped by Load.
func readFile(path string) (spectrum.Spectrum, error) {
	f, err := os.Open(path)
	if err != nil {
		return spectrum.Spectrum{}, err
	}
	defer f.Close()

	var wavelen, flux []float64
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	headerSkipped := false
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		lineNum++
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		w, fl, perr := parseRow(line)
		if perr != nil {
			// One non-numeric header line is tolerated before the data.
			if len(wavelen) == 0 && !headerSkipped {
				headerSkipped = true
				continue
			}
			return spectrum.Spectrum{}, fmt.Errorf("%w (line %d)", ErrNoColumns, lineNum)
		}
		wavelen = append(wavelen, w)
		flux = append(flux, fl)
	}
	if err := sc.Err(); err != nil {
		return spectrum.Spectrum{}, err
	}
	if len(flux) > 0 && math.IsNaN(flux[0]) {
		return spectrum.Spectrum{}, ErrLeadingNaN
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return spectrum.New(name, wavelen, flux)
}

func parseRow(line string) (w, f float64, err error) {
	// Whitespace- and comma-separated tables both occur in spectra dumps.
	fields := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(fields) < 2 {
		return 0, 0, ErrNoColumns
	}
	w, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, err
	}
	f, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, err
	}
	return w, f, nil
}
