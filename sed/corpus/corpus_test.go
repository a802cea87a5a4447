package corpus

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-sed/internal/testutil"
)

func TestLoadTwoSpectra(t *testing.T) {
	dir := t.TempDir()
	grid := testutil.Grid(200, 1300)
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "sample.dat"), grid, testutil.RampFlux(1300, 2, 1098))
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "sample_2.dat"), grid, testutil.RampFlux(1300, 1, 549))

	specs, skipped, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("skipped = %v, want none", skipped)
	}
	if len(specs) != 2 {
		t.Fatalf("len(specs) = %d, want 2", len(specs))
	}
	if specs[0].Name != "sample" || specs[1].Name != "sample_2" {
		t.Fatalf("names = %q, %q; want sample, sample_2", specs[0].Name, specs[1].Name)
	}
	testutil.RequireSliceEqual(t, specs[0].Wavelen, grid)
	testutil.RequireSliceEqual(t, specs[0].Flux, testutil.RampFlux(1300, 2, 1098))
}

func TestLoadRecursesSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "hot")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	grid := testutil.Grid(100, 10)
	testutil.WriteSpectrumFile(t, filepath.Join(sub, "nested.txt"), grid, testutil.Constant(1, 10))

	specs, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "nested" {
		t.Fatalf("specs = %v, want one spectrum named nested", specs)
	}
}

func TestLoadSkipsUnparseable(t *testing.T) {
	dir := t.TempDir()
	grid := testutil.Grid(100, 10)
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "good.dat"), grid, testutil.Constant(2, 10))
	if err := os.WriteFile(filepath.Join(dir, "junk.dat"), []byte("100 1\nnot numbers here at all\n"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	specs, skipped, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "good" {
		t.Fatalf("specs = %v, want only good", specs)
	}
	if len(skipped) != 1 || !errors.Is(skipped[0].Err, ErrNoColumns) {
		t.Fatalf("skipped = %v, want one ErrNoColumns", skipped)
	}
}

func TestLoadSkipsLeadingNaN(t *testing.T) {
	dir := t.TempDir()
	grid := testutil.Grid(100, 10)
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "good.dat"), grid, testutil.Constant(2, 10))
	if err := os.WriteFile(filepath.Join(dir, "nan.dat"), []byte("100 NaN\n101 1\n102 1\n"), 0o644); err != nil {
		t.Fatalf("write nan: %v", err)
	}

	specs, skipped, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("len(specs) = %d, want 1", len(specs))
	}
	if len(skipped) != 1 || !errors.Is(skipped[0].Err, ErrLeadingNaN) {
		t.Fatalf("skipped = %v, want one ErrLeadingNaN", skipped)
	}
}

func TestLoadSkipsNonIncreasingGrid(t *testing.T) {
	dir := t.TempDir()
	grid := testutil.Grid(100, 10)
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "good.dat"), grid, testutil.Constant(2, 10))
	if err := os.WriteFile(filepath.Join(dir, "bad.dat"), []byte("102 1\n101 1\n100 1\n"), 0o644); err != nil {
		t.Fatalf("write bad: %v", err)
	}

	specs, skipped, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 || len(skipped) != 1 {
		t.Fatalf("specs = %d, skipped = %d; want 1 and 1", len(specs), len(skipped))
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	_, _, err := Load(t.TempDir())
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
}

func TestLoadAllFilesUnusable(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "junk.dat"), []byte("####\ngarbage\n"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}

	_, skipped, err := Load(dir)
	if !errors.Is(err, ErrEmpty) {
		t.Fatalf("err = %v, want ErrEmpty", err)
	}
	if len(skipped) != 1 {
		t.Fatalf("len(skipped) = %d, want 1", len(skipped))
	}
}

func TestLoadWithExtensions(t *testing.T) {
	dir := t.TempDir()
	grid := testutil.Grid(100, 10)
	testutil.WriteSpectrumFile(t, filepath.Join(dir, "keep.dat"), grid, testutil.Constant(1, 10))
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("docs, not a spectrum\n"), 0o644); err != nil {
		t.Fatalf("write readme: %v", err)
	}

	specs, skipped, err := Load(dir, WithExtensions(".dat"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(specs) != 1 || len(skipped) != 0 {
		t.Fatalf("specs = %d, skipped = %d; want 1 and 0", len(specs), len(skipped))
	}
}

func TestLoadHeaderAndComments(t *testing.T) {
	dir := t.TempDir()
	content := "Lambda Flux\n# comment\n100 1\n101 2\n"
	if err := os.WriteFile(filepath.Join(dir, "s.dat"), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	specs, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	testutil.RequireSliceEqual(t, specs[0].Wavelen, []float64{100, 101})
	testutil.RequireSliceEqual(t, specs[0].Flux, []float64{1, 2})
}
