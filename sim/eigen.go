package sim

import "math"

// Eigenvalues returns the length-k geometric decay spectrum for decay rate
// gamma, normalized so the first value is 1:
//
//	e_i = exp(-gamma·i) / exp(-gamma),  i = 1..k
//
// The sequence is strictly positive, strictly decreasing for gamma > 0, and
// constant 1 for gamma = 0. A positive floor clamps values from below, which
// keeps steep spectra numerically non-singular; floor <= 0 means no floor.
// Pure function, no randomness.
func Eigenvalues(gamma float64, k int, floor float64) []float64 {
	vals := make([]float64, k)
	norm := math.Exp(-gamma)
	for i := range vals {
		v := math.Exp(-gamma*float64(i+1)) / norm
		if floor > 0 && v < floor {
			v = floor
		}
		vals[i] = v
	}
	return vals
}

// responseEigenvalues returns the m latent response component variances: the
// first nblocks entries decay with eta (normalized like Eigenvalues), the
// remainder are identity padding for uninformative components.
func responseEigenvalues(eta float64, nblocks, m int) []float64 {
	vals := make([]float64, m)
	copy(vals, Eigenvalues(eta, nblocks, 0))
	for i := nblocks; i < m; i++ {
		vals[i] = 1
	}
	return vals
}
