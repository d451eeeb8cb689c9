package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/regsim/regsim/sim"
)

var (
	// CLI flags shared by simulate and describe
	specFile    string    // YAML experiment spec path; overrides the flat flags
	variantName string    // single, paired, or multi
	seed        int64     // RNG master seed
	numSamples  int       // Number of observations to draw
	numPred     int       // Number of predictors p
	numResp     int       // Response dimensionality m (multi variant)
	gamma       float64   // Predictor eigenvalue decay
	eta         float64   // Latent response eigenvalue decay
	lambdaMin   float64   // Optional eigenvalue floor
	qCounts     []int     // Relevant predictor count per block
	relPosSpec  string    // Core relevant positions, blocks separated by ';'
	r2Targets   []float64 // R² target per block
)

func addSimulationFlags(c *cobra.Command) {
	c.Flags().StringVar(&specFile, "config", "", "YAML experiment spec (overrides the flat flags)")
	c.Flags().StringVar(&variantName, "variant", "single", "Response layout: single, paired, or multi")
	c.Flags().Int64Var(&seed, "seed", 0, "RNG master seed")
	c.Flags().IntVar(&numSamples, "n", 100, "Number of observations to draw")
	c.Flags().IntVar(&numPred, "p", 10, "Number of predictors")
	c.Flags().IntVar(&numResp, "m", 0, "Response dimensionality (multi variant)")
	c.Flags().Float64Var(&gamma, "gamma", 0.5, "Predictor eigenvalue decay rate")
	c.Flags().Float64Var(&eta, "eta", 0, "Latent response eigenvalue decay rate")
	c.Flags().Float64Var(&lambdaMin, "lambda-min", 0, "Eigenvalue floor (0 = none)")
	c.Flags().IntSliceVar(&qCounts, "q", []int{3}, "Relevant predictor count per block")
	c.Flags().StringVar(&relPosSpec, "relpos", "1,2,3", "Core relevant positions per block, e.g. \"1,2;5,6\"")
	c.Flags().Float64SliceVar(&r2Targets, "r2", []float64{0.9}, "R² target per block")
}

// buildSimulation constructs the instance from --config if given, otherwise
// from the flat flags.
func buildSimulation() (*sim.Simulation, error) {
	if specFile != "" {
		spec, err := sim.LoadExperimentSpec(specFile)
		if err != nil {
			return nil, err
		}
		return spec.Build()
	}
	v, err := sim.ParseVariant(variantName)
	if err != nil {
		return nil, err
	}
	relPos, err := parseRelPos(relPosSpec)
	if err != nil {
		return nil, err
	}
	if len(qCounts) != len(relPos) || len(r2Targets) != len(relPos) {
		return nil, fmt.Errorf("--q, --relpos, and --r2 must describe the same number of blocks (got %d, %d, %d)",
			len(qCounts), len(relPos), len(r2Targets))
	}
	blocks := make([]sim.BlockConfig, len(relPos))
	for i := range blocks {
		blocks[i] = sim.BlockConfig{Q: qCounts[i], RelPos: relPos[i], R2: r2Targets[i]}
	}
	cfg := sim.Config{
		N:         numSamples,
		P:         numPred,
		M:         numResp,
		Blocks:    blocks,
		Gamma:     gamma,
		Eta:       eta,
		Seed:      seed,
		LambdaMin: lambdaMin,
	}
	return sim.NewSimulation(cfg, v)
}

// parseRelPos parses per-block position lists: blocks separated by ';',
// positions within a block by ','. "1,2,3;5,6" → [[1 2 3] [5 6]].
func parseRelPos(s string) ([][]int, error) {
	var out [][]int
	for _, group := range strings.Split(s, ";") {
		group = strings.TrimSpace(group)
		if group == "" {
			continue
		}
		var set []int
		for _, field := range strings.Split(group, ",") {
			pos, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("invalid relpos entry %q: %w", field, err)
			}
			set = append(set, pos)
		}
		out = append(out, set)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("relpos is empty")
	}
	return out, nil
}
