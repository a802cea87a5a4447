package persist

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-sed/sed/pca"
)

const (
	wavelengthsFile = "wavelengths.dat"
	meanFile        = "meanSpectrum.dat"
	varianceFile    = "explainedVariance.dat"
	eigenDir        = "eigenspectra"
	eigenPrefix     = "eigenspectra_"
	componentsDir   = "components"
	datExt          = ".dat"
)

var (
	// ErrDestinationExists indicates a save target that already holds a
	// model and no overwrite flag was given.
	ErrDestinationExists = errors.New("persist: destination already exists")
	// ErrCorruptModel indicates a missing, partial, or inconsistent saved
	// model.
	ErrCorruptModel = errors.New("persist: corrupt or partial model")
)

type config struct {
	overwrite bool
}

// Option configures Save.
type Option func(*config)

// WithOverwrite lets Save replace a previously saved model instead of
// failing with ErrDestinationExists.
func WithOverwrite() Option {
	return func(cfg *config) { cfg.overwrite = true }
}

// Save writes the model under dir: the wavelength grid, mean spectrum,
// explained variance, one file per eigenspectrum, and one coefficient
// file per spectrum name. dir itself is created as needed; the
// eigenspectra and components subdirectories must not already exist
// unless [WithOverwrite] is given.
func Save(model *pca.Model, dir string, opts ...Option) error {
	var cfg config
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("persist: create %s: %w", dir, err)
	}
	for _, sub := range []string{filepath.Join(dir, eigenDir), filepath.Join(dir, componentsDir)} {
		if cfg.overwrite {
			if err := os.RemoveAll(sub); err != nil {
				return fmt.Errorf("persist: clear %s: %w", sub, err)
			}
		}
		if err := os.Mkdir(sub, 0o755); err != nil {
			if os.IsExist(err) {
				return fmt.Errorf("%w: %s", ErrDestinationExists, sub)
			}
			return fmt.Errorf("persist: create %s: %w", sub, err)
		}
	}

	if err := writeFloats(filepath.Join(dir, wavelengthsFile), model.Wavelen); err != nil {
		return err
	}
	if err := writeFloats(filepath.Join(dir, meanFile), model.Mean); err != nil {
		return err
	}
	if model.ExplainedVariance != nil {
		if err := writeFloats(filepath.Join(dir, varianceFile), model.ExplainedVariance); err != nil {
			return err
		}
	}
	for k, eig := range model.Eigenspectra {
		name := fmt.Sprintf("%s%d%s", eigenPrefix, k, datExt)
		if err := writeFloats(filepath.Join(dir, eigenDir, name), eig); err != nil {
			return err
		}
	}
	for _, name := range model.Names() {
		path := filepath.Join(dir, componentsDir, name+datExt)
		if err := writeFloats(path, model.Coefficients[name]); err != nil {
			return err
		}
	}
	return nil
}

// Load reads a model previously written by Save. Coefficient keys are the
// components/ file name stems. A model without explainedVariance.dat is
// accepted with a nil variance field.
func Load(dir string) (*pca.Model, error) {
	wavelen, err := readFloats(filepath.Join(dir, wavelengthsFile))
	if err != nil {
		return nil, err
	}
	mean, err := readFloats(filepath.Join(dir, meanFile))
	if err != nil {
		return nil, err
	}

	explained, err := readFloats(filepath.Join(dir, varianceFile))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		explained = nil
	}

	eigenspectra, err := readEigenspectra(filepath.Join(dir, eigenDir))
	if err != nil {
		return nil, err
	}
	coefficients, err := readCoefficients(filepath.Join(dir, componentsDir))
	if err != nil {
		return nil, err
	}

	model, err := pca.NewModel(wavelen, mean, eigenspectra, coefficients, explained)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}
	return model, nil
}

// readEigenspectra loads eigenspectra_<k>.dat for contiguous k starting
// at zero, preserving the descending-variance order chosen at save time.
func readEigenspectra(dir string) ([][]float64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	byIndex := make(map[int]string, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, eigenPrefix) || !strings.HasSuffix(name, datExt) {
			continue
		}
		k, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, eigenPrefix), datExt))
		if err != nil || k < 0 {
			return nil, fmt.Errorf("%w: unexpected eigenspectrum file %s", ErrCorruptModel, name)
		}
		byIndex[k] = filepath.Join(dir, name)
	}

	out := make([][]float64, len(byIndex))
	for k := range out {
		path, ok := byIndex[k]
		if !ok {
			return nil, fmt.Errorf("%w: missing eigenspectrum %d", ErrCorruptModel, k)
		}
		vec, err := readFloats(path)
		if err != nil {
			return nil, err
		}
		out[k] = vec
	}
	return out, nil
}

func readCoefficients(dir string) (map[string][]float64, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptModel, err)
	}

	out := make(map[string][]float64, len(entries))
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), datExt) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	for _, name := range names {
		vec, err := readFloats(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		out[strings.TrimSuffix(name, datExt)] = vec
	}
	return out, nil
}

// writeFloats writes one float per line using the shortest representation
// that parses back to the identical value.
func writeFloats(path string, vals []float64) error {
	var b strings.Builder
	for _, v := range vals {
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("persist: write %s: %w", path, err)
	}
	return nil
}

func readFloats(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("persist: open %s: %w", path, err)
	}
	defer f.Close()

	var out []float64
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCorruptModel, path, err)
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("persist: read %s: %w", path, err)
	}
	return out, nil
}
