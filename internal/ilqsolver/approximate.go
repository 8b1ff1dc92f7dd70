package ilqsolver

import (
	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/lqgame"
	"github.com/rcaudy/ilqgames/internal/playercost"
	"github.com/rcaudy/ilqgames/internal/strategy"
)

// linearizeAndQuadraticize fills lin and cost for every timestep of op
// by calling dyn.Linearize and each player's Quadraticize. Each
// timestep's inputs (x_hat(k), u_hat(k)) are read-only and each
// timestep writes to its own disjoint slot, so the loop is
// parallelized per spec §5.
func linearizeAndQuadraticize(
	dyn dynamics.Dynamics,
	costs []playercost.PlayerCost,
	op strategy.OperatingPoint,
	dt float64,
) ([]lqgame.StepLinearization, []lqgame.StepCost) {
	T := len(op.Xhat)
	lin := make([]lqgame.StepLinearization, T)
	cost := make([]lqgame.StepCost, T)

	parallelFor(T, 8, 4, func(start, end int) {
		for k := start; k < end; k++ {
			t := op.T0 + float64(k)*dt
			x, u := op.Xhat[k], op.Uhat[k]

			A, B := dyn.Linearize(t, dt, x, u)
			lin[k] = lqgame.StepLinearization{A: A, B: B}

			players := make([]playercost.QuadraticCostApproximation, len(costs))
			for i, c := range costs {
				players[i] = c.Quadraticize(t, x, u)
			}
			cost[k] = lqgame.StepCost{Players: players}
		}
	})

	return lin, cost
}
