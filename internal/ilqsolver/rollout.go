package ilqsolver

import (
	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/jointstate"
	"github.com/rcaudy/ilqgames/internal/strategy"
)

// rollout applies the current affine feedback strategies through the
// true nonlinear dynamics to produce the next operating point (spec
// §4.5). It always uses dyn.Integrate, even though the LQ step that
// produced strategies used a linearized surrogate.
//
// Sign convention (matching lqgame.Solve, checked by
// TestRolloutFeedbackSubtractsAlphaAndGain):
// u_i(k) = u_hat_last,i(k) - P_i(k)*x_delta(k) - alpha_i(k).
func rollout(dyn dynamics.Dynamics, x0 jointstate.JointState, t0, dt float64, last strategy.OperatingPoint, strategies []strategy.Strategy, mode RolloutMode) strategy.OperatingPoint {
	T := len(last.Xhat)
	numPlayers := len(strategies)

	out := strategy.OperatingPoint{
		Xhat: make([]jointstate.JointState, T),
		Uhat: make([]jointstate.ControlProfile, T),
		T0:   t0,
	}

	x := x0.Clone()
	for k := 0; k < T; k++ {
		var xDelta jointstate.JointState
		if mode == OpenLoop {
			xDelta = make(jointstate.JointState, len(x))
		} else {
			xDelta = x.Sub(last.Xhat[k])
		}

		u := make(jointstate.ControlProfile, numPlayers)
		for i := 0; i < numPlayers; i++ {
			ui := last.Uhat[k][i].Clone()
			Pi := strategies[i].P[k]
			alphai := strategies[i].Alpha[k]
			for r := range ui {
				feedback := 0.0
				row := Pi[r]
				for c, dv := range xDelta {
					feedback += row[c] * dv
				}
				ui[r] -= feedback + alphai[r]
			}
			u[i] = ui
		}

		out.Xhat[k] = x
		out.Uhat[k] = u

		if k < T-1 {
			tk := t0 + float64(k)*dt
			x = dyn.Integrate(tk, dt, x, u)
		}
	}

	return out
}
