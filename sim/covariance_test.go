package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossCovariance_ZeroAtIrrelevantPositions(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	eigen := Eigenvalues(0.8, 10, 0)
	cross := CrossCovariance(10, []int{1, 2, 3}, 0.9, 1.0, eigen, rng)
	require.Len(t, cross, 10)
	for pos := 4; pos <= 10; pos++ {
		assert.Zero(t, cross[pos-1], "position %d", pos)
	}
	for pos := 1; pos <= 3; pos++ {
		assert.NotZero(t, cross[pos-1], "position %d", pos)
	}
}

func TestCrossCovariance_SplitsExactTargetR2(t *testing.T) {
	// Σ σ_j²/(λ_j·ηw) telescopes back to the R² target regardless of the
	// random weight split.
	rng := rand.New(rand.NewSource(99))
	eigen := Eigenvalues(0.5, 12, 0)
	for _, tc := range []struct{ r2, etaWeight float64 }{
		{0.9, 1.0},
		{0.5, 1.0},
		{0.7, 0.3},
	} {
		cross := CrossCovariance(12, []int{2, 5, 7, 11}, tc.r2, tc.etaWeight, eigen, rng)
		var sum float64
		for pos, cov := range cross {
			if cov != 0 {
				sum += cov * cov / (eigen[pos] * tc.etaWeight)
			}
		}
		assert.InDelta(t, tc.r2, sum, 1e-12)
	}
}

func TestAssembleCovariance_BlockLayout(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	predEigen := Eigenvalues(0.8, 10, 0)
	respEigen := []float64{1}
	cross := [][]float64{CrossCovariance(10, []int{1, 2, 3}, 0.9, 1.0, predEigen, rng)}

	sigma, err := AssembleCovariance(respEigen, predEigen, cross)
	require.NoError(t, err)

	dim, _ := sigma.Dims()
	require.Equal(t, 11, dim)
	assert.Equal(t, 1.0, sigma.At(0, 0))
	for i, lambda := range predEigen {
		assert.Equal(t, lambda, sigma.At(1+i, 1+i), "predictor block diagonal %d", i)
	}
	for i := range predEigen {
		assert.Equal(t, cross[0][i], sigma.At(0, 1+i))
		assert.Equal(t, cross[0][i], sigma.At(1+i, 0), "symmetry")
	}
	// Off-diagonal predictor block stays zero in latent space.
	for i := 1; i <= 10; i++ {
		for j := 1; j <= 10; j++ {
			if i != j {
				assert.Zero(t, sigma.At(i, j))
			}
		}
	}
}

func TestAssembleCovariance_RejectsNearSingular(t *testing.T) {
	// R² pushed against 1 leaves a residual variance of ~1e-15: numerically
	// singular, and the builder must say so instead of returning the matrix.
	rng := rand.New(rand.NewSource(8))
	predEigen := Eigenvalues(0.8, 10, 0)
	cross := [][]float64{CrossCovariance(10, []int{1, 2, 3}, 1-1e-15, 1.0, predEigen, rng)}
	_, err := AssembleCovariance([]float64{1}, predEigen, cross)
	assert.ErrorIs(t, err, ErrInvalidCovariance)
}

func TestAssembleCovariance_WellConditionedScenarioPasses(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	predEigen := Eigenvalues(0.8, 10, 0)
	cross := [][]float64{CrossCovariance(10, []int{1, 2, 3}, 0.9, 1.0, predEigen, rng)}
	sigma, err := AssembleCovariance([]float64{1}, predEigen, cross)
	require.NoError(t, err)
	assert.NotNil(t, sigma)
}

func TestCheckPositiveDefinite_TinyResponseEigenvalue(t *testing.T) {
	// Extreme eta decay shrinks a latent response variance toward zero; with
	// R² stacked on top the Schur complement vanishes below tolerance.
	eta := 35.0
	respEigen := responseEigenvalues(eta, 2, 2)
	require.Less(t, respEigen[1], 1e-14/0.05)

	rng := rand.New(rand.NewSource(2))
	predEigen := Eigenvalues(0.2, 8, 0)
	cross := [][]float64{
		CrossCovariance(8, []int{1, 2}, 0.95, respEigen[0], predEigen, rng),
		CrossCovariance(8, []int{3, 4}, 0.95, respEigen[1], predEigen, rng),
	}
	_, err := AssembleCovariance(respEigen, predEigen, cross)
	assert.ErrorIs(t, err, ErrInvalidCovariance)
}

func TestAssembleCovariance_SymmetricAndPositiveDefinite(t *testing.T) {
	rng := rand.New(rand.NewSource(31))
	for _, gamma := range []float64{0, 0.3, 0.9} {
		predEigen := Eigenvalues(gamma, 15, 0)
		respEigen := responseEigenvalues(0.7, 2, 4)
		cross := [][]float64{
			CrossCovariance(15, []int{1, 4, 6}, 0.8, respEigen[0], predEigen, rng),
			CrossCovariance(15, []int{2, 9}, 0.6, respEigen[1], predEigen, rng),
		}
		sigma, err := AssembleCovariance(respEigen, predEigen, cross)
		require.NoError(t, err, "gamma=%f", gamma)

		dim, _ := sigma.Dims()
		for i := 0; i < dim; i++ {
			for j := 0; j < dim; j++ {
				assert.Equal(t, sigma.At(i, j), sigma.At(j, i))
				assert.False(t, math.IsNaN(sigma.At(i, j)))
			}
		}
	}
}
