// Package ilqconfig provides YAML-loadable solver and scenario
// configuration for the example CLI driver (spec §6), grounded on the
// teacher's internal/config.Config (yaml-tagged struct,
// DefaultConfig/Load/Save via os.ReadFile+yaml.Unmarshal).
package ilqconfig

import (
	"os"

	"gopkg.in/yaml.v3"
)

// SolverConfig mirrors the solver knobs of spec §6.
type SolverConfig struct {
	TimeHorizon           float64 `yaml:"time_horizon"`
	TimeStep              float64 `yaml:"time_step"`
	MaxIterations         int     `yaml:"max_iterations"`
	ConvergenceTolerance  float64 `yaml:"convergence_tolerance"`
	InitialAlphaScaling   float64 `yaml:"initial_alpha_scaling"`
	TrustRegionSize       float64 `yaml:"trust_region_size"`
	ExponentialConstant   float64 `yaml:"exponential_constant"`
	ControlCostWeight     float64 `yaml:"control_cost_weight"`
	OpenLoop              bool    `yaml:"open_loop"`
}

// DefaultSolverConfig returns the documented defaults of spec §4.8/§6.
func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		TimeHorizon:          2.0,
		TimeStep:             0.1,
		MaxIterations:        50,
		ConvergenceTolerance: 0.1,
		InitialAlphaScaling:  1.0,
		ControlCostWeight:    1.0,
	}
}

// InitialStateConfig holds the per-player initial-state flags of spec §6
// (--px0, --py0, --theta0, --v0, --d0).
type InitialStateConfig struct {
	PX0    float64 `yaml:"px0"`
	PY0    float64 `yaml:"py0"`
	Theta0 float64 `yaml:"theta0"`
	V0     float64 `yaml:"v0"`
	D0     float64 `yaml:"d0"`
}

// ScenarioSpec is the YAML-loadable bundle the example driver builds a
// scenario from: which named dynamics/cost to use, the initial state,
// and the solver config.
type ScenarioSpec struct {
	Scenario        string              `yaml:"scenario"`
	ExperimentName  string              `yaml:"experiment_name"`
	InitialState    InitialStateConfig  `yaml:"initial_state"`
	Solver          SolverConfig        `yaml:"solver"`
}

// DefaultScenarioSpec returns a scenario spec with documented defaults.
func DefaultScenarioSpec() *ScenarioSpec {
	return &ScenarioSpec{
		Scenario:       "unicycle_goal",
		ExperimentName: "default",
		Solver:         DefaultSolverConfig(),
	}
}

// Load reads a ScenarioSpec from a YAML file, falling back to defaults
// for any field the file doesn't set.
func Load(path string) (*ScenarioSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := DefaultScenarioSpec()
	if err := yaml.Unmarshal(data, spec); err != nil {
		return nil, err
	}
	return spec, nil
}

// Save writes spec to path as YAML.
func Save(path string, spec *ScenarioSpec) error {
	data, err := yaml.Marshal(spec)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Horizon returns the discretized horizon T = ceil(horizon/dt), per spec §6.
func (c SolverConfig) Horizon() int {
	if c.TimeStep <= 0 {
		return 0
	}
	n := c.TimeHorizon / c.TimeStep
	t := int(n)
	if float64(t) < n {
		t++
	}
	return t
}
