// Command sedpca fits a principal-component basis to a directory of
// model spectra and writes the resulting model to disk.
//
// Usage:
//
//	sedpca -in spectra/ -out model/ [flags]
//
// Examples:
//
//	sedpca -in spectra/ -out model/ -comps 10
//	sedpca -in spectra/ -out model/ -comps 5 -min 299 -max 1200
//	sedpca -in spectra/ -out model/ -comps 10 -overwrite
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/cwbudde/algo-sed/sed/corpus"
	"github.com/cwbudde/algo-sed/sed/pca"
	"github.com/cwbudde/algo-sed/sed/persist"
	"github.com/cwbudde/algo-sed/sed/spectrum"
)

func main() {
	in := flag.String("in", "", "directory of two-column spectrum files (required)")
	out := flag.String("out", "", "directory to write the fitted model into (required)")
	comps := flag.Int("comps", 10, "maximum number of principal components")
	minW := flag.Float64("min", 299, "minimum wavelength of the fitting window")
	maxW := flag.Float64("max", 1200, "maximum wavelength of the fitting window")
	overwrite := flag.Bool("overwrite", false, "replace a previously written model")
	verbose := flag.Bool("v", false, "report every skipped input file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: sedpca -in spectra/ -out model/ [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fits a principal-component basis to a spectrum corpus.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *in == "" || *out == "" {
		flag.Usage()
		os.Exit(2)
	}

	specs, skipped, err := corpus.Load(*in)
	if err != nil {
		fatal(err)
	}
	if *verbose {
		for _, s := range skipped {
			fmt.Fprintf(os.Stderr, "skipped %s: %v\n", s.Path, s.Err)
		}
	}

	window := spectrum.Window{Min: *minW, Max: *maxW}
	model, err := pca.Fit(specs, window, *comps)
	if err != nil {
		fatal(err)
	}

	var opts []persist.Option
	if *overwrite {
		opts = append(opts, persist.WithOverwrite())
	}
	if err := persist.Save(model, *out, opts...); err != nil {
		fatal(err)
	}

	printReport(os.Stdout, model, len(specs), len(skipped))
}

func printReport(w *os.File, model *pca.Model, loaded, skipped int) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "spectra loaded\t%d\n", loaded)
	fmt.Fprintf(tw, "files skipped\t%d\n", skipped)
	fmt.Fprintf(tw, "grid samples\t%d\n", len(model.Wavelen))
	fmt.Fprintf(tw, "components\t%d\n", model.NumComponents())
	for k, ev := range model.ExplainedVariance {
		fmt.Fprintf(tw, "  variance[%d]\t%.6f\n", k, ev)
	}
	tw.Flush()
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
