package sim

import "fmt"

// BlockConfig describes one response block: how many relevant predictors it
// gets, which positions (1-based) are required to be among them, and the R²
// target the block's latent response component must carry.
type BlockConfig struct {
	Q      int     `yaml:"q"`
	RelPos []int   `yaml:"relpos"`
	R2     float64 `yaml:"r2"`
}

// Config holds the user parameters of a simulation instance. It is read once
// at construction and never mutated afterwards.
type Config struct {
	N         int           `yaml:"n"`                    // default sample size for draws
	P         int           `yaml:"p"`                    // predictor count
	Blocks    []BlockConfig `yaml:"blocks"`               // one per response block, declaration order significant
	Gamma     float64       `yaml:"gamma"`                // predictor eigenvalue decay, >= 0
	Eta       float64       `yaml:"eta,omitempty"`        // latent response eigenvalue decay, >= 0 (multi-response)
	M         int           `yaml:"m,omitempty"`          // response dimensionality (defaults per variant)
	Seed      int64         `yaml:"seed,omitempty"`       // RNG master seed, used verbatim
	LambdaMin float64       `yaml:"lambda_min,omitempty"` // optional eigenvalue floor, 0 = none
	MuX       []float64     `yaml:"mu_x,omitempty"`       // optional predictor mean shift, length p
	MuY       []float64     `yaml:"mu_y,omitempty"`       // optional response mean shift, length m
}

// validate checks Config consistency for the given variant. Block structure
// is fixed by the variant tag, never inferred from input shape.
func (c *Config) validate(v Variant) error {
	if c.N <= 0 {
		return fmt.Errorf("%w: n must be positive, got %d", ErrInvalidParameter, c.N)
	}
	if c.P <= 0 {
		return fmt.Errorf("%w: p must be positive, got %d", ErrInvalidParameter, c.P)
	}
	if c.Gamma < 0 {
		return fmt.Errorf("%w: gamma must be non-negative, got %f", ErrInvalidParameter, c.Gamma)
	}
	if c.Eta < 0 {
		return fmt.Errorf("%w: eta must be non-negative, got %f", ErrInvalidParameter, c.Eta)
	}
	if c.LambdaMin < 0 || c.LambdaMin >= 1 {
		return fmt.Errorf("%w: lambda_min must be in [0, 1), got %f", ErrInvalidParameter, c.LambdaMin)
	}

	switch v {
	case VariantSingle:
		if len(c.Blocks) != 1 {
			return fmt.Errorf("%w: single-response variant takes exactly 1 block, got %d", ErrInvalidParameter, len(c.Blocks))
		}
		if c.M > 1 {
			return fmt.Errorf("%w: single-response variant requires m=1, got %d", ErrInvalidParameter, c.M)
		}
	case VariantPaired:
		if len(c.Blocks) != 2 {
			return fmt.Errorf("%w: paired-response variant takes exactly 2 blocks, got %d", ErrInvalidParameter, len(c.Blocks))
		}
		if c.M != 0 && c.M != 2 {
			return fmt.Errorf("%w: paired-response variant requires m=2, got %d", ErrInvalidParameter, c.M)
		}
	case VariantMulti:
		if len(c.Blocks) == 0 {
			return fmt.Errorf("%w: multi-response variant needs at least 1 block", ErrInvalidParameter)
		}
		if c.M < len(c.Blocks) {
			return fmt.Errorf("%w: m=%d is less than the %d response blocks", ErrInvalidParameter, c.M, len(c.Blocks))
		}
	default:
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidParameter, v)
	}

	totalQ := 0
	for i, b := range c.Blocks {
		if b.Q < 1 || b.Q > c.P {
			return fmt.Errorf("%w: block %d q=%d outside [1, p=%d]", ErrInvalidParameter, i+1, b.Q, c.P)
		}
		if len(b.RelPos) > b.Q {
			return fmt.Errorf("%w: block %d lists %d core positions but q=%d", ErrInvalidParameter, i+1, len(b.RelPos), b.Q)
		}
		if b.R2 <= 0 || b.R2 >= 1 {
			return fmt.Errorf("%w: block %d r2 must be in (0, 1), got %f", ErrInvalidParameter, i+1, b.R2)
		}
		totalQ += b.Q
	}
	if totalQ > c.P {
		return fmt.Errorf("%w: blocks claim %d relevant positions, only p=%d available", ErrInvalidParameter, totalQ, c.P)
	}

	m := c.responseDim(v)
	if c.MuX != nil && len(c.MuX) != c.P {
		return fmt.Errorf("%w: mu_x has length %d, want p=%d", ErrInvalidParameter, len(c.MuX), c.P)
	}
	if c.MuY != nil && len(c.MuY) != m {
		return fmt.Errorf("%w: mu_y has length %d, want m=%d", ErrInvalidParameter, len(c.MuY), m)
	}
	return nil
}

// responseDim resolves the effective response dimensionality for the variant.
func (c *Config) responseDim(v Variant) int {
	switch v {
	case VariantSingle:
		return 1
	case VariantPaired:
		return 2
	default:
		return c.M
	}
}
