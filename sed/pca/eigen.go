package pca

import (
	"math"
	"sort"
)

const (
	jacobiMaxSweeps = 64
	jacobiEps       = 1e-14
)

// jacobiEigen diagonalizes the symmetric matrix a (modified in place)
// with cyclic Jacobi rotations and returns the eigenvalues in descending
// order together with the matching unit eigenvectors, one vector per row.
//
// The matrices handled here are small Gram matrices (order = corpus
// size), where Jacobi converges in a handful of sweeps and is accurate to
// machine precision.
func jacobiEigen(a [][]float64) ([]float64, [][]float64) {
	n := len(a)
	v := identity(n)

	total := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			total += a[i][j] * a[i][j]
		}
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		if offDiagSq(a) <= jacobiEps*jacobiEps*total {
			break
		}
		for p := 0; p < n-1; p++ {
			for q := p + 1; q < n; q++ {
				rotate(a, v, p, q)
			}
		}
	}

	vals := make([]float64, n)
	order := make([]int, n)
	for i := range vals {
		vals[i] = a[i][i]
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return vals[order[i]] > vals[order[j]]
	})

	sortedVals := make([]float64, n)
	vecs := make([][]float64, n)
	for k, idx := range order {
		sortedVals[k] = vals[idx]
		vecs[k] = make([]float64, n)
		for i := 0; i < n; i++ {
			vecs[k][i] = v[i][idx]
		}
	}
	return sortedVals, vecs
}

// rotate zeroes a[p][q] with one Givens rotation, accumulating it into v.
func rotate(a, v [][]float64, p, q int) {
	apq := a[p][q]
	if apq == 0 {
		return
	}

	tau := (a[q][q] - a[p][p]) / (2 * apq)
	var t float64
	if tau >= 0 {
		t = 1 / (tau + math.Sqrt(1+tau*tau))
	} else {
		t = -1 / (-tau + math.Sqrt(1+tau*tau))
	}
	c := 1 / math.Sqrt(1+t*t)
	s := t * c

	for r := 0; r < len(a); r++ {
		if r == p || r == q {
			continue
		}
		arp, arq := a[r][p], a[r][q]
		a[r][p] = c*arp - s*arq
		a[p][r] = a[r][p]
		a[r][q] = s*arp + c*arq
		a[q][r] = a[r][q]
	}
	a[p][p] -= t * apq
	a[q][q] += t * apq
	a[p][q] = 0
	a[q][p] = 0

	for r := 0; r < len(v); r++ {
		vrp, vrq := v[r][p], v[r][q]
		v[r][p] = c*vrp - s*vrq
		v[r][q] = s*vrp + c*vrq
	}
}

func identity(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
		m[i][i] = 1
	}
	return m
}

func offDiagSq(a [][]float64) float64 {
	sum := 0.0
	for i := 0; i < len(a)-1; i++ {
		for j := i + 1; j < len(a); j++ {
			sum += 2 * a[i][j] * a[i][j]
		}
	}
	return sum
}
