package sim

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// pdTolerance is the smallest eigenvalue the assembled latent covariance may
// carry and still count as positive definite. The matrix is unit-scaled (the
// leading predictor eigenvalue and the response variances are at most 1), so
// anything below this is numerically indistinguishable from singular.
const pdTolerance = 1e-14

// CrossCovariance derives the latent cross-covariance vector between one
// response component and the full p-dimensional latent predictor vector. One
// uniform [-1,1] weight is drawn per relevant position; the entry at relevant
// position j becomes
//
//	sign(u_j) · sqrt(R² · |u_j|/Σ|u| · λ_j · etaWeight)
//
// and zero at every irrelevant position. The random weights split the target
// R² across the relevant positions, randomizing coefficient magnitudes within
// a fixed total explained variance, while the λ_j and etaWeight factors keep
// the covariance consistent with both marginal variances. The component's R²
// against its relevant set equals the target exactly, independent of the
// draws.
//
// Draw order: one uniform draw per relevant position, in set order.
func CrossCovariance(p int, positions []int, r2, etaWeight float64, eigenvalues []float64, rng *rand.Rand) []float64 {
	u := distuv.Uniform{Min: -1, Max: 1, Src: rng}
	weights := make([]float64, len(positions))
	var total float64
	for i := range weights {
		weights[i] = u.Rand()
		total += math.Abs(weights[i])
	}
	cross := make([]float64, p)
	for i, pos := range positions {
		share := math.Abs(weights[i]) / total
		cov := math.Sqrt(r2 * share * eigenvalues[pos-1] * etaWeight)
		if weights[i] < 0 {
			cov = -cov
		}
		cross[pos-1] = cov
	}
	return cross
}

// AssembleCovariance builds the symmetric (m+p)×(m+p) latent covariance:
// response components first with diag(respEigen), then predictors with
// diag(predEigen), cross vectors stacked into the off-diagonal blocks
// (cross[j] pairs response component j with the predictors; components
// beyond len(cross) are uninformative noise). The result must pass a strict
// positive-definite check; failure aborts construction with
// ErrInvalidCovariance rather than silently clamping.
func AssembleCovariance(respEigen, predEigen []float64, cross [][]float64) (*mat.SymDense, error) {
	m, p := len(respEigen), len(predEigen)
	sigma := mat.NewSymDense(m+p, nil)
	for j, v := range respEigen {
		sigma.SetSym(j, j, v)
	}
	for i, v := range predEigen {
		sigma.SetSym(m+i, m+i, v)
	}
	for j, vec := range cross {
		for i, v := range vec {
			if v != 0 {
				sigma.SetSym(j, m+i, v)
			}
		}
	}
	if err := checkPositiveDefinite(sigma); err != nil {
		return nil, err
	}
	return sigma, nil
}

func checkPositiveDefinite(sigma *mat.SymDense) error {
	var es mat.EigenSym
	if !es.Factorize(sigma, false) {
		return fmt.Errorf("%w: eigendecomposition did not converge", ErrInvalidCovariance)
	}
	// Values come back in ascending order.
	vals := es.Values(nil)
	if vals[0] <= pdTolerance {
		return fmt.Errorf("%w: smallest eigenvalue %.3e (R² too close to 1, or eta/gamma decay too steep)",
			ErrInvalidCovariance, vals[0])
	}
	return nil
}
