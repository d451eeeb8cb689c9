// Package sim generates synthetic regression data with exactly controlled
// population properties: predictor count, number and position of relevant
// predictors, coefficient of determination (R²), and eigenvalue decay of the
// predictor covariance. The true regression coefficients and the minimum
// achievable prediction error are known in closed form, so fitted models can
// be scored against ground truth.
//
// # Reading Guide
//
// Start with these three files to understand the pipeline:
//   - simulation.go: the Simulation facade, construction order, and variants
//   - covariance.go: latent covariance assembly and the positive-definite check
//   - sampler.go: Cholesky-based multivariate-normal sampling and rotation
//
// # Architecture
//
// A Simulation is built in a fixed topological order and then frozen:
//
//	eigenvalues → relevant positions → latent covariance Σ → rotations →
//	true coefficients / R² / minimum error
//
// The covariance structure is defined in an unrotated latent space where the
// predictor block of Σ is diagonal (the eigenvalue spectrum) and each latent
// response component carries the exact requested R² against its relevant
// predictor set. Random orthogonal rotations then disguise the structure in
// the observed coordinate system without changing any second moments.
//
// Three response layouts exist, selected explicitly and never inferred from
// input shape:
//   - VariantSingle: one response, one relevant-predictor block
//   - VariantPaired: two responses whose latent components are rotated
//     together, producing a correlated pair
//   - VariantMulti: m responses over several disjoint relevant-predictor
//     blocks, with latent components grouped and rotated per block
//
// Construction either returns a fully valid instance or an error; there is no
// partial state. After construction every derived property is read-only and
// Sample may be called any number of times, each call an independent draw.
package sim
