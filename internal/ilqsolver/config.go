package ilqsolver

import (
	"github.com/rcaudy/ilqgames/internal/strategy"
)

// RolloutMode selects feedback vs. open-loop rollout (spec §6 `open_loop`).
type RolloutMode int

const (
	// Feedback rollout sets x_delta(k) = x(k) - x_hat_last(k) (spec §4.5).
	Feedback RolloutMode = iota
	// OpenLoop pins x_delta(k) = 0 for every k (SPEC_FULL.md §6.2).
	OpenLoop
)

// Config holds the solver knobs of spec §6.
type Config struct {
	TimeStep             float64
	MaxIterations         int
	ConvergenceTolerance  float64
	InitialAlphaScaling   float64
	TrustRegionSize       float64
	ExponentialConstant   float64
	Mode                  RolloutMode

	// Modifier overrides the default alpha-scaling modifier. If nil, a
	// modifier is built from InitialAlphaScaling/TrustRegionSize.
	Modifier strategy.Modifier
}

// DefaultConfig returns the documented defaults of spec §6/§4.8.
func DefaultConfig() Config {
	return Config{
		TimeStep:            0.1,
		MaxIterations:        50,
		ConvergenceTolerance: 0.1,
		InitialAlphaScaling:  1.0,
	}
}

func (c Config) modifier() strategy.Modifier {
	if c.Modifier != nil {
		return c.Modifier
	}
	gamma := c.InitialAlphaScaling
	if gamma <= 0 {
		gamma = 1
	}
	base := strategy.AlphaScalingModifier{Gamma: gamma}
	if c.TrustRegionSize > 0 {
		return strategy.TrustRegionModifier{Inner: base, MaxAlpha: c.TrustRegionSize}
	}
	return base
}

func (c Config) convergenceMonitor() strategy.ConvergenceMonitor {
	eps := c.ConvergenceTolerance
	if eps <= 0 {
		eps = 0.1
	}
	maxIters := c.MaxIterations
	if maxIters <= 0 {
		maxIters = 50
	}
	return strategy.ConvergenceMonitor{EpsX: eps, EpsU: eps, MaxIters: maxIters}
}
