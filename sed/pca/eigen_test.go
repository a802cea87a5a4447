package pca

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-sed/internal/testutil"
)

func TestJacobiEigen2x2(t *testing.T) {
	a := [][]float64{
		{2, 1},
		{1, 2},
	}
	vals, vecs := jacobiEigen(a)

	testutil.RequireSliceNearlyEqual(t, vals, []float64{3, 1}, 1e-12)

	// Eigenvector for eigenvalue 3 is (1,1)/sqrt(2) up to sign.
	r := 1 / math.Sqrt2
	if math.Abs(math.Abs(vecs[0][0])-r) > 1e-12 || math.Abs(vecs[0][0]-vecs[0][1]) > 1e-12 {
		t.Fatalf("first eigenvector = %v, want +-(%v, %v)", vecs[0], r, r)
	}
}

func TestJacobiEigenDiagonal(t *testing.T) {
	a := [][]float64{
		{1, 0, 0},
		{0, 5, 0},
		{0, 0, 3},
	}
	vals, vecs := jacobiEigen(a)
	testutil.RequireSliceNearlyEqual(t, vals, []float64{5, 3, 1}, 1e-14)

	// Eigenvectors are coordinate axes, permuted to match the sorting.
	wantAxes := []int{1, 2, 0}
	for k, axis := range wantAxes {
		for i, v := range vecs[k] {
			want := 0.0
			if i == axis {
				want = 1
			}
			if math.Abs(math.Abs(v)-want) > 1e-14 {
				t.Fatalf("vecs[%d] = %v, want axis %d", k, vecs[k], axis)
			}
		}
	}
}

func TestJacobiEigenOrthonormal(t *testing.T) {
	a := [][]float64{
		{4, 1, 0.5, 0},
		{1, 3, 0.25, 0.1},
		{0.5, 0.25, 2, 0.3},
		{0, 0.1, 0.3, 1},
	}
	vals, vecs := jacobiEigen(a)

	for k := 1; k < len(vals); k++ {
		if vals[k] > vals[k-1] {
			t.Fatalf("eigenvalues not descending: %v", vals)
		}
	}
	for i := range vecs {
		for j := range vecs {
			dot := 0.0
			for r := range vecs[i] {
				dot += vecs[i][r] * vecs[j][r]
			}
			want := 0.0
			if i == j {
				want = 1
			}
			if math.Abs(dot-want) > 1e-10 {
				t.Fatalf("vecs[%d].vecs[%d] = %v, want %v", i, j, dot, want)
			}
		}
	}

	// Trace is preserved by the similarity transform.
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	testutil.RequireNearlyEqual(t, sum, 10, 1e-10)
}
