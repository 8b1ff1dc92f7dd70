package playercost

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// TrajectoryCost accumulates a player's per-step cost over a trajectory
// (spec §4.6). For risk-neutral costs this is a plain sum; for
// exponentiated costs it sums exp(a*c_k) over k and returns log(total)/a,
// requiring total > 0.
func TrajectoryCost(cost PlayerCost, t0, dt float64, xs []jointstate.JointState, us []jointstate.ControlProfile) float64 {
	a, exponentiated := cost.IsExponentiated()
	if !exponentiated {
		total := 0.0
		for k := range xs {
			total += cost.Evaluate(t0+float64(k)*dt, xs[k], us[k])
		}
		return total
	}

	total := 0.0
	for k := range xs {
		c := cost.Evaluate(t0+float64(k)*dt, xs[k], us[k])
		total += math.Exp(a * c)
	}
	if total <= 0 {
		return math.Inf(1)
	}
	return math.Log(total) / a
}
