// Package ilqsolver implements the outer fixed-point iteration of spec
// §4.4: rollout, linearize+quadraticize, solve the LQ game, modify
// strategies, log, and check convergence.
package ilqsolver

import (
	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/gamelog"
	"github.com/rcaudy/ilqgames/internal/ilqerrors"
	"github.com/rcaudy/ilqgames/internal/ilqlog"
	"github.com/rcaudy/ilqgames/internal/jointstate"
	"github.com/rcaudy/ilqgames/internal/lqgame"
	"github.com/rcaudy/ilqgames/internal/playercost"
	"github.com/rcaudy/ilqgames/internal/strategy"
)

// Result is what Solve returns: the final operating point and
// strategies, the full iteration log, and the convergence status.
type Result struct {
	OperatingPoint strategy.OperatingPoint
	Strategies     []strategy.Strategy
	Log            gamelog.Log
	Status         strategy.Status
}

// Solve runs the iterative LQ game solver to (approximate) convergence
// (spec §4.4). dyn and costs are shared-read for the duration of the
// call and must not be mutated by the caller (spec §5). initial is the
// starting operating point; its length fixes the horizon T.
func Solve(
	dyn dynamics.Dynamics,
	costs []playercost.PlayerCost,
	x0 jointstate.JointState,
	initial strategy.OperatingPoint,
	cfg Config,
	logger *ilqlog.Logger,
) (Result, error) {
	if err := validate(dyn, costs, x0, initial, cfg); err != nil {
		return Result{}, err
	}

	T := len(initial.Xhat)
	xDim := dyn.XDim()
	uDims := make([]int, dyn.NumPlayers())
	for i := range uDims {
		uDims[i] = dyn.UDim(i)
	}

	current := initial.Clone()
	last := initial.Clone()

	strategies := make([]strategy.Strategy, dyn.NumPlayers())
	for i := range strategies {
		strategies[i] = strategy.NewStrategy(T, uDims[i], xDim)
	}

	modifier := cfg.modifier()
	monitor := cfg.convergenceMonitor()

	var log gamelog.Log

	for n := 0; ; n++ {
		current = rollout(dyn, x0, initial.T0, cfg.TimeStep, last, strategies, cfg.Mode)

		lin, stageCost := linearizeAndQuadraticize(dyn, costs, current, cfg.TimeStep)

		feedback, err := lqgame.Solve(lin, stageCost, xDim, uDims)
		if err != nil {
			return Result{}, &ilqerrors.SolveError{Iteration: n, Err: err}
		}

		candidate := make([]strategy.Strategy, len(feedback))
		zNorm := make([]float64, len(feedback))
		zetaNorm := make([]float64, len(feedback))
		for i, fb := range feedback {
			candidate[i] = strategy.Strategy{P: fb.P, Alpha: fb.Alpha}
			zNorm[i] = matInfNorm(fb.Z0)
			zetaNorm[i] = vecInfNorm(fb.Zeta0)
		}
		logger.Verbose(n, zNorm, zetaNorm)

		baseline := totalCost(costs, initial.T0, cfg.TimeStep, current)
		trial := func(scaled []strategy.Strategy) (float64, error) {
			trialOp := rollout(dyn, x0, initial.T0, cfg.TimeStep, current, scaled, cfg.Mode)
			return totalCost(costs, initial.T0, cfg.TimeStep, trialOp), nil
		}

		accepted, gammaUsed, err := modifier.Modify(candidate, baseline, trial)
		if err != nil {
			return Result{}, &ilqerrors.SolveError{Iteration: n, Err: err}
		}
		strategies = accepted

		perPlayerCost := make([]float64, len(costs))
		for i, c := range costs {
			perPlayerCost[i] = playercost.TrajectoryCost(c, initial.T0, cfg.TimeStep, current.Xhat, current.Uhat)
		}

		status := monitor.Check(n, current, last)
		log = append(log, gamelog.IterationRecord{
			OperatingPoint: current.Clone(),
			Strategies:     cloneStrategies(strategies),
			Cost:           perPlayerCost,
			TimedOut:       status.TimedOut,
		})

		logger.Iteration(n, perPlayerCost, status.DxInf, status.DuInf, gammaUsed)

		if status.Converged {
			logger.Final(n, true, status.TimedOut, perPlayerCost)
			return Result{
				OperatingPoint: current,
				Strategies:     strategies,
				Log:            log,
				Status:         status,
			}, nil
		}

		last = current
	}
}

func totalCost(costs []playercost.PlayerCost, t0, dt float64, op strategy.OperatingPoint) float64 {
	total := 0.0
	for _, c := range costs {
		total += playercost.TrajectoryCost(c, t0, dt, op.Xhat, op.Uhat)
	}
	return total
}

func cloneStrategies(strategies []strategy.Strategy) []strategy.Strategy {
	out := make([]strategy.Strategy, len(strategies))
	copy(out, strategies)
	return out
}

func matInfNorm(A [][]float64) float64 {
	max := 0.0
	for _, row := range A {
		for _, v := range row {
			if v < 0 {
				v = -v
			}
			if v > max {
				max = v
			}
		}
	}
	return max
}

func vecInfNorm(v []float64) float64 {
	max := 0.0
	for _, x := range v {
		if x < 0 {
			x = -x
		}
		if x > max {
			max = x
		}
	}
	return max
}

func validate(dyn dynamics.Dynamics, costs []playercost.PlayerCost, x0 jointstate.JointState, initial strategy.OperatingPoint, cfg Config) error {
	if dyn.NumPlayers() != len(costs) {
		return ilqerrors.ErrConfigMismatch
	}
	if len(x0) != dyn.XDim() {
		return ilqerrors.ErrConfigMismatch
	}
	if len(initial.Xhat) == 0 || len(initial.Xhat) != len(initial.Uhat) {
		return ilqerrors.ErrConfigMismatch
	}
	for _, x := range initial.Xhat {
		if len(x) != dyn.XDim() {
			return ilqerrors.ErrConfigMismatch
		}
	}
	for _, u := range initial.Uhat {
		if len(u) != dyn.NumPlayers() {
			return ilqerrors.ErrConfigMismatch
		}
		for i, ui := range u {
			if len(ui) != dyn.UDim(i) {
				return ilqerrors.ErrConfigMismatch
			}
		}
	}
	// spec §4.6: every risk-sensitive cost in a solve must share the same
	// exponential constant a, and cfg.ExponentialConstant records it.
	for _, c := range costs {
		if a, ok := c.IsExponentiated(); ok && a != cfg.ExponentialConstant {
			return ilqerrors.ErrConfigMismatch
		}
	}
	return nil
}
