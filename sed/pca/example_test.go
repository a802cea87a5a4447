package pca_test

import (
	"fmt"

	"github.com/cwbudde/algo-sed/sed/pca"
	"github.com/cwbudde/algo-sed/sed/spectrum"
)

func ExampleFit() {
	grid := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	flat, _ := spectrum.New("flat", grid, []float64{5, 5, 5, 5, 5, 5, 5, 5, 5, 5})
	ramp, _ := spectrum.New("ramp", grid, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	model, _ := pca.Fit([]spectrum.Spectrum{flat, ramp}, spectrum.Window{Min: 2, Max: 7}, 2)
	fmt.Printf("grid=%d components=%d names=%v\n", len(model.Wavelen), model.NumComponents(), model.Names())
	// Output:
	// grid=6 components=1 names=[flat ramp]
}
