package sim

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampleObserved draws n i.i.d. observations from the latent covariance and
// maps them into observed space: Cholesky-factor Σ, right-multiply an
// n×(m+p) standard-normal matrix by Lᵗ, split into response and predictor
// columns, rotate each block, then apply the optional post-hoc mean shifts.
//
// Σ is re-validated here even though construction already checked it; a
// failure is an internal invariant violation and surfaces as
// ErrNotPositiveDefinite rather than being retried.
//
// Draw order: n·(m+p) standard-normal draws, row-major.
func sampleObserved(n, m, p int, sigma *mat.SymDense, rotX, rotY *mat.Dense, muX, muY []float64, rng *rand.Rand) (x, y *mat.Dense, err error) {
	var chol mat.Cholesky
	if !chol.Factorize(sigma) {
		return nil, nil, fmt.Errorf("%w: Cholesky factorization failed", ErrNotPositiveDefinite)
	}
	dim := m + p
	l := mat.NewTriDense(dim, mat.Lower, nil)
	chol.LTo(l)

	norm := distuv.Normal{Mu: 0, Sigma: 1, Src: rng}
	data := make([]float64, n*dim)
	for i := range data {
		data[i] = norm.Rand()
	}
	z := mat.NewDense(n, dim, data)

	latent := mat.NewDense(n, dim, nil)
	latent.Mul(z, l.T())

	y = mat.NewDense(n, m, nil)
	y.Mul(latent.Slice(0, n, 0, m), responseRotationT(m, rotY))
	x = mat.NewDense(n, p, nil)
	x.Mul(latent.Slice(0, n, m, dim), rotX.T())

	shiftColumns(x, muX)
	shiftColumns(y, muY)
	return x, y, nil
}

// responseRotationT returns Rᵗ for the response block, or identity when the
// single-response variant carries no response rotation.
func responseRotationT(m int, rotY *mat.Dense) mat.Matrix {
	if rotY == nil {
		return identity(m)
	}
	return rotY.T()
}

// shiftColumns adds mu[j] to every entry of column j; nil means no shift.
func shiftColumns(a *mat.Dense, mu []float64) {
	if mu == nil {
		return
	}
	rows, cols := a.Dims()
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			a.Set(i, j, a.At(i, j)+mu[j])
		}
	}
}
