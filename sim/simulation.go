package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/mat"
)

// Variant selects the response layout. It is an explicit tag: the block
// structure is never inferred from the shape of the position inputs.
type Variant int

const (
	// VariantSingle is one response with one relevant-predictor block.
	VariantSingle Variant = iota
	// VariantPaired is two responses whose latent components rotate
	// together, yielding a correlated observed pair.
	VariantPaired
	// VariantMulti is m responses over several disjoint relevant-predictor
	// blocks, latent components grouped and rotated per block.
	VariantMulti
)

func (v Variant) String() string {
	switch v {
	case VariantSingle:
		return "single"
	case VariantPaired:
		return "paired"
	case VariantMulti:
		return "multi"
	}
	return fmt.Sprintf("variant(%d)", int(v))
}

// ParseVariant maps a variant name to its tag.
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "single":
		return VariantSingle, nil
	case "paired":
		return VariantPaired, nil
	case "multi":
		return VariantMulti, nil
	}
	return 0, fmt.Errorf("%w: unknown variant %q (valid: single, paired, multi)", ErrInvalidParameter, name)
}

// Simulation is a frozen simulation instance. Construction computes the
// eigenvalue spectra, position partition, latent covariance, rotations, and
// derived model quantities in a fixed topological order; afterwards every
// field is read-only and Sample draws any number of independent realizations.
type Simulation struct {
	cfg     Config
	variant Variant
	m, p    int

	rng *PartitionedRNG

	predEigen []float64
	respEigen []float64
	relPos    [][]int
	irrelPos  []int
	yGroups   [][]int

	sigma   *mat.SymDense
	sigmaZW *mat.Dense
	rotX    *mat.Dense
	rotY    *mat.Dense // nil for a single response

	model trueModel
}

// NewSingleResponse constructs a single-response simulation (m=1, one block).
func NewSingleResponse(cfg Config) (*Simulation, error) {
	return newSimulation(cfg, VariantSingle)
}

// NewPairedResponse constructs a correlated-pair simulation (m=2, two blocks).
func NewPairedResponse(cfg Config) (*Simulation, error) {
	return newSimulation(cfg, VariantPaired)
}

// NewMultiResponse constructs a multi-block simulation (m >= number of blocks).
func NewMultiResponse(cfg Config) (*Simulation, error) {
	return newSimulation(cfg, VariantMulti)
}

// NewSimulation dispatches on the variant tag.
func NewSimulation(cfg Config, v Variant) (*Simulation, error) {
	return newSimulation(cfg, v)
}

func newSimulation(cfg Config, v Variant) (*Simulation, error) {
	if err := cfg.validate(v); err != nil {
		return nil, err
	}
	cfg = cfg.clone()
	m := cfg.responseDim(v)
	s := &Simulation{
		cfg:     cfg,
		variant: v,
		m:       m,
		p:       cfg.P,
		rng:     NewPartitionedRNG(NewSimulationKey(cfg.Seed)),
	}

	s.predEigen = Eigenvalues(cfg.Gamma, s.p, cfg.LambdaMin)
	s.respEigen = responseEigenvalues(cfg.Eta, len(cfg.Blocks), m)

	posRNG := s.rng.ForSubsystem(SubsystemPositions)
	blocks := make([]BlockPositions, len(cfg.Blocks))
	for i, b := range cfg.Blocks {
		blocks[i] = BlockPositions{Count: b.Q, Core: b.RelPos}
	}
	relPos, irrel, err := AllocatePositions(s.p, blocks, posRNG)
	if err != nil {
		return nil, err
	}
	s.relPos, s.irrelPos = relPos, irrel

	covRNG := s.rng.ForSubsystem(SubsystemCovariance)
	cross := make([][]float64, len(cfg.Blocks))
	for i, b := range cfg.Blocks {
		cross[i] = CrossCovariance(s.p, relPos[i], b.R2, s.respEigen[i], s.predEigen, covRNG)
	}
	s.sigma, err = AssembleCovariance(s.respEigen, s.predEigen, cross)
	if err != nil {
		return nil, err
	}
	s.sigmaZW = crossMatrix(s.p, m, cross)

	rotRNG := s.rng.ForSubsystem(SubsystemRotation)
	xGroups := make([][]int, 0, len(relPos)+1)
	xGroups = append(xGroups, relPos...)
	xGroups = append(xGroups, irrel)
	s.rotX = NewRotation(s.p, xGroups, rotRNG)
	if m > 1 {
		s.yGroups, err = responseGroups(v, len(cfg.Blocks), m, posRNG)
		if err != nil {
			return nil, err
		}
		s.rotY = NewRotation(m, s.yGroups, rotRNG)
	}

	s.model = deriveModel(s.predEigen, s.respEigen, s.sigmaZW, s.rotX, s.rotY)
	logrus.Debugf("constructed %s simulation: p=%d m=%d blocks=%d relevant=%v",
		v, s.p, m, len(cfg.Blocks), s.relPos)
	return s, nil
}

// responseGroups assigns the m latent response components to rotation groups.
// The paired variant rotates both components as one group, which is what
// correlates the observed pair. The multi variant gives each block its
// informative component plus an even share of the noise components, extended
// through the same allocator used for predictor positions.
func responseGroups(v Variant, nblocks, m int, rng *rand.Rand) ([][]int, error) {
	if v == VariantPaired {
		return [][]int{{1, 2}}, nil
	}
	blocks := make([]BlockPositions, nblocks)
	base, extra := m/nblocks, m%nblocks
	for i := range blocks {
		count := base
		if i < extra {
			count++
		}
		blocks[i] = BlockPositions{Count: count, Core: []int{i + 1}}
	}
	groups, _, err := AllocatePositions(m, blocks, rng)
	return groups, err
}

// crossMatrix stacks the per-block cross vectors into the p×m latent
// cross-covariance; columns beyond the block count are uninformative noise.
func crossMatrix(p, m int, cross [][]float64) *mat.Dense {
	out := mat.NewDense(p, m, nil)
	for j, vec := range cross {
		for i, val := range vec {
			out.Set(i, j, val)
		}
	}
	return out
}

// Sample draws n fresh i.i.d. observations of (predictors, response) using
// the instance's own sample stream. Draws are independent across calls and
// never mutate the covariance or rotations. Not safe for concurrent use; see
// SampleRand.
func (s *Simulation) Sample(n int) (x, y *mat.Dense, err error) {
	return s.SampleRand(n, s.rng.ForSubsystem(SubsystemSample))
}

// SampleRand draws with a caller-owned generator. Concurrent draws against
// the same frozen instance are safe as long as every goroutine brings its own
// *rand.Rand.
func (s *Simulation) SampleRand(n int, rng *rand.Rand) (x, y *mat.Dense, err error) {
	if n <= 0 {
		return nil, nil, fmt.Errorf("%w: sample size must be positive, got %d", ErrInvalidParameter, n)
	}
	return sampleObserved(n, s.m, s.p, s.sigma, s.rotX, s.rotY, s.cfg.MuX, s.cfg.MuY, rng)
}

// === Read-only derived properties ===
//
// All accessors return copies so callers cannot disturb the frozen instance.

// Variant returns the response layout tag.
func (s *Simulation) Variant() Variant { return s.variant }

// N returns the configured default sample size.
func (s *Simulation) N() int { return s.cfg.N }

// Seed returns the RNG master seed.
func (s *Simulation) Seed() int64 { return s.cfg.Seed }

// P returns the predictor count.
func (s *Simulation) P() int { return s.p }

// M returns the response dimensionality.
func (s *Simulation) M() int { return s.m }

// Eigenvalues returns the predictor eigenvalue spectrum.
func (s *Simulation) Eigenvalues() []float64 { return copyFloats(s.predEigen) }

// ResponseEigenvalues returns the latent response component variances.
func (s *Simulation) ResponseEigenvalues() []float64 { return copyFloats(s.respEigen) }

// RelevantPositions returns the per-block relevant predictor positions
// (1-based), core positions first in each set.
func (s *Simulation) RelevantPositions() [][]int { return copyIndexSets(s.relPos) }

// IrrelevantPositions returns the predictor positions claimed by no block.
func (s *Simulation) IrrelevantPositions() []int { return copyInts(s.irrelPos) }

// ResponseGroups returns the latent response rotation groups; nil for a
// single response.
func (s *Simulation) ResponseGroups() [][]int { return copyIndexSets(s.yGroups) }

// Sigma returns the assembled latent covariance, responses first.
func (s *Simulation) Sigma() *mat.SymDense {
	out := mat.NewSymDense(s.m+s.p, nil)
	out.CopySym(s.sigma)
	return out
}

// CrossCovariance returns the p×m latent predictor/response cross block.
func (s *Simulation) CrossCovariance() *mat.Dense { return copyDense(s.sigmaZW) }

// RotationX returns the p×p predictor rotation.
func (s *Simulation) RotationX() *mat.Dense { return copyDense(s.rotX) }

// RotationY returns the m×m response rotation, nil for a single response.
func (s *Simulation) RotationY() *mat.Dense { return copyDense(s.rotY) }

// BetaLatent returns the p×m true coefficients in latent space.
func (s *Simulation) BetaLatent() *mat.Dense { return copyDense(s.model.betaLatent) }

// Beta returns the p×m true coefficients in observed space.
func (s *Simulation) Beta() *mat.Dense { return copyDense(s.model.beta) }

// RSquared returns the per-response coefficient of determination.
func (s *Simulation) RSquared() []float64 { return copyFloats(s.model.r2) }

// MinError returns the per-response minimum achievable residual variance.
func (s *Simulation) MinError() []float64 { return copyFloats(s.model.minError) }

// ResidualCovariance returns the m×m observed residual covariance.
func (s *Simulation) ResidualCovariance() *mat.Dense { return copyDense(s.model.residual) }

func (c Config) clone() Config {
	out := c
	out.Blocks = make([]BlockConfig, len(c.Blocks))
	for i, b := range c.Blocks {
		out.Blocks[i] = BlockConfig{Q: b.Q, RelPos: copyInts(b.RelPos), R2: b.R2}
	}
	out.MuX = copyFloats(c.MuX)
	out.MuY = copyFloats(c.MuY)
	return out
}

func copyFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func copyInts(v []int) []int {
	if v == nil {
		return nil
	}
	out := make([]int, len(v))
	copy(out, v)
	return out
}

func copyIndexSets(v [][]int) [][]int {
	if v == nil {
		return nil
	}
	out := make([][]int, len(v))
	for i, set := range v {
		out[i] = copyInts(set)
	}
	return out
}

func copyDense(a *mat.Dense) *mat.Dense {
	if a == nil {
		return nil
	}
	var out mat.Dense
	out.CloneFrom(a)
	return &out
}
