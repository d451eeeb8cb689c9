package sim

import "errors"

// Error taxonomy. All failures are deterministic functions of the input
// parameters and the seed, so nothing is retried: retrying with the same
// inputs would reproduce the same failure.
var (
	// ErrInvalidParameter reports out-of-range or mutually inconsistent
	// configuration values (counts, decay rates, R² targets, mean vectors).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidPosition reports a relevant position outside [1, p], a
	// duplicated position, or a block whose requested size exceeds the
	// remaining unclaimed predictor pool.
	ErrInvalidPosition = errors.New("invalid relevant position")

	// ErrInvalidCovariance reports that the assembled latent covariance
	// failed the positive-definite check. Typically caused by an R² target
	// too close to 1 combined with extreme eta/gamma decay. Surfaced at
	// construction; the instance is not returned.
	ErrInvalidCovariance = errors.New("latent covariance not positive definite")

	// ErrNotPositiveDefinite reports a Cholesky failure at draw time. The
	// covariance is immutable once built and already validated, so hitting
	// this is an internal invariant violation, not a user error.
	ErrNotPositiveDefinite = errors.New("covariance not positive definite at draw time")
)
