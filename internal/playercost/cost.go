// Package playercost defines the per-player cost contract (spec §4.2):
// evaluation, quadraticization into the blocks the LQ solver consumes,
// and optional exponential ("risk-sensitive") reshaping (spec §4.6).
package playercost

import "github.com/rcaudy/ilqgames/internal/jointstate"

// QuadraticCostApproximation is the per-timestep, per-player quadratic
// model of a PlayerCost about an operating point (spec §3).
//
// Q, L are the state Hessian/gradient. Ruu[j], Ru[j] are this player's
// cost Hessian/gradient with respect to player j's control — R_{ij} and
// r_{ij} in spec notation, where i is the owning player. Ruu[i] (the
// player's own control block) must be positive-definite after
// regularization; Ruu[j] for j != i need not be.
type QuadraticCostApproximation struct {
	Q  [][]float64
	L  []float64
	Ruu [][][]float64
	Ru  [][]float64
}

// PlayerCost is the cost functional of a single player.
type PlayerCost interface {
	// Evaluate returns the raw (non-exponentiated) per-step cost c_k.
	Evaluate(t float64, x jointstate.JointState, u jointstate.ControlProfile) float64

	// Quadraticize returns the quadratic approximation of the *effective*
	// cost about (x, u): if the cost is exponentiated, the exponential
	// reshaping of spec §4.6 is folded in here, once per point.
	Quadraticize(t float64, x jointstate.JointState, u jointstate.ControlProfile) QuadraticCostApproximation

	// IsExponentiated reports whether this cost is risk-sensitive and, if
	// so, its exponential constant a > 0.
	IsExponentiated() (a float64, ok bool)
}

// StateCostTerm contributes to the state Hessian/gradient blocks of a
// player's cost.
type StateCostTerm interface {
	Evaluate(t float64, x jointstate.JointState) float64
	Quadraticize(t float64, x jointstate.JointState) (Q [][]float64, l []float64)
}

// ControlCostTerm contributes to the R_{ij}/r_{ij} blocks for a single
// other player's control j, named by PlayerIndex.
type ControlCostTerm interface {
	PlayerIndex() int
	Evaluate(t float64, u jointstate.PlayerControl) float64
	Quadraticize(t float64, u jointstate.PlayerControl) (R [][]float64, r []float64)
}
