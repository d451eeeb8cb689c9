package sim

import "gonum.org/v1/gonum/mat"

// trueModel holds the derived population quantities: true regression
// coefficients in latent and observed space, per-response R², and the minimum
// achievable (residual) error. All are pure functions of the latent
// covariance and the rotations, computed once at construction.
type trueModel struct {
	betaLatent *mat.Dense // p×m
	beta       *mat.Dense // p×m, observed space
	r2         []float64  // per observed response
	minError   []float64  // per observed response
	residual   *mat.Dense // m×m observed residual covariance
}

// deriveModel computes the population regression quantities.
//
// In latent space β_latent = Σ_zz⁻¹·Σ_zw, cheap because the predictor block
// is diagonal. Observed coefficients rotate both sides: β = R_x·β_latent·R_yᵗ
// (the response rotation is absent for a single response). The explained
// response covariance Σ_zwᵗ·β_latent and the total response covariance are
// rotated into observed space; R² per response is their diagonal ratio and
// the minimum error is their diagonal difference. For a single response this
// reduces to R² = β_latentᵗ·σ_zw and minimum error 1−R², exact by
// construction.
func deriveModel(predEigen, respEigen []float64, sigmaZW *mat.Dense, rotX, rotY *mat.Dense) trueModel {
	p, m := sigmaZW.Dims()

	betaLatent := mat.NewDense(p, m, nil)
	for i := 0; i < p; i++ {
		for j := 0; j < m; j++ {
			betaLatent.Set(i, j, sigmaZW.At(i, j)/predEigen[i])
		}
	}

	explained := mat.NewDense(m, m, nil)
	explained.Mul(sigmaZW.T(), betaLatent)
	total := mat.NewDense(m, m, nil)
	for j, v := range respEigen {
		total.Set(j, j, v)
	}

	beta := mat.NewDense(p, m, nil)
	beta.Mul(rotX, betaLatent)
	if rotY != nil {
		rotated := mat.NewDense(p, m, nil)
		rotated.Mul(beta, rotY.T())
		beta = rotated
		explained = rotateSym(explained, rotY)
		total = rotateSym(total, rotY)
	}

	r2 := make([]float64, m)
	minError := make([]float64, m)
	residual := mat.NewDense(m, m, nil)
	residual.Sub(total, explained)
	for j := 0; j < m; j++ {
		r2[j] = explained.At(j, j) / total.At(j, j)
		minError[j] = residual.At(j, j)
	}

	return trueModel{
		betaLatent: betaLatent,
		beta:       beta,
		r2:         r2,
		minError:   minError,
		residual:   residual,
	}
}

// rotateSym returns R·A·Rᵗ.
func rotateSym(a, r *mat.Dense) *mat.Dense {
	n, _ := a.Dims()
	var tmp mat.Dense
	tmp.Mul(r, a)
	out := mat.NewDense(n, n, nil)
	out.Mul(&tmp, r.T())
	return out
}
