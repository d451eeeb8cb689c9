package sim

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// RandomOrthogonal returns a k×k random orthogonal matrix: a k×k matrix of
// independent standard-normal entries, columns mean-centered, orthonormalized
// via QR. The 1×1 case is the trivial identity block.
//
// Draw order: k·k rng.NormFloat64 draws, row-major.
func RandomOrthogonal(k int, rng *rand.Rand) *mat.Dense {
	if k == 1 {
		return mat.NewDense(1, 1, []float64{1})
	}
	data := make([]float64, k*k)
	for i := range data {
		data[i] = rng.NormFloat64()
	}
	a := mat.NewDense(k, k, data)
	for j := 0; j < k; j++ {
		var sum float64
		for i := 0; i < k; i++ {
			sum += a.At(i, j)
		}
		mean := sum / float64(k)
		for i := 0; i < k; i++ {
			a.Set(i, j, a.At(i, j)-mean)
		}
	}
	var qr mat.QR
	qr.Factorize(a)
	q := mat.NewDense(k, k, nil)
	qr.QTo(q)
	return q
}

// NewRotation builds a dim×dim orthogonal matrix that is block-diagonal over
// the given index groups (1-based, pairwise disjoint): each group gets an
// independent random orthogonal block embedded at its rows/columns, indices
// in no group stay identity. Groups are consumed in declaration order, which
// fixes the draw order under a seeded rng.
func NewRotation(dim int, groups [][]int, rng *rand.Rand) *mat.Dense {
	rot := identity(dim)
	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		block := RandomOrthogonal(len(group), rng)
		for a, ra := range group {
			for b, rb := range group {
				rot.Set(ra-1, rb-1, block.At(a, b))
			}
		}
	}
	return rot
}

func identity(dim int) *mat.Dense {
	m := mat.NewDense(dim, dim, nil)
	for i := 0; i < dim; i++ {
		m.Set(i, i, 1)
	}
	return m
}
