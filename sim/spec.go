package sim

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ExperimentSpec is the YAML form of one simulation experiment: a variant
// name plus the inline engine configuration. Loaded via LoadExperimentSpec.
//
//	variant: single
//	seed: 42
//	n: 100
//	p: 10
//	gamma: 0.8
//	blocks:
//	  - q: 3
//	    relpos: [1, 2, 3]
//	    r2: 0.9
type ExperimentSpec struct {
	Variant string `yaml:"variant"`
	Config  `yaml:",inline"`
}

// LoadExperimentSpec reads and parses an experiment spec file. Unknown YAML
// fields are rejected so typos fail loudly instead of silently defaulting.
func LoadExperimentSpec(path string) (*ExperimentSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading experiment spec: %w", err)
	}
	var spec ExperimentSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parsing experiment spec: %w", err)
	}
	return &spec, nil
}

// Build validates the spec and constructs the simulation instance.
func (s *ExperimentSpec) Build() (*Simulation, error) {
	v, err := ParseVariant(s.Variant)
	if err != nil {
		return nil, err
	}
	return NewSimulation(s.Config, v)
}
