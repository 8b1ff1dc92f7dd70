// Package strategy holds the Strategy and OperatingPoint containers
// (spec §3), the pluggable step-control modifiers (spec §4.7), and the
// convergence monitor (spec §4.8).
package strategy

import "github.com/rcaudy/ilqgames/internal/jointstate"

// Strategy is one player's affine time-varying feedback law over the
// horizon: u_i(k) = u_hat_i(k) - P_i(k)*(x - x_hat(k)) - alpha_i(k).
type Strategy struct {
	P     [][][]float64 // P[k]: u_dim_i x x_dim
	Alpha [][]float64   // Alpha[k]: u_dim_i
}

// NewStrategy builds a zero-valued strategy of the given horizon and
// dimensions, built once and overwritten every iteration (spec §3).
func NewStrategy(horizon, uDim, xDim int) Strategy {
	P := make([][][]float64, horizon)
	alpha := make([][]float64, horizon)
	for k := 0; k < horizon; k++ {
		Pk := make([][]float64, uDim)
		for r := range Pk {
			Pk[r] = make([]float64, xDim)
		}
		P[k] = Pk
		alpha[k] = make([]float64, uDim)
	}
	return Strategy{P: P, Alpha: alpha}
}

// OperatingPoint is the nominal trajectory about which dynamics are
// linearized and costs quadraticized (spec §3).
type OperatingPoint struct {
	Xhat  []jointstate.JointState      // length T
	Uhat  []jointstate.ControlProfile  // length T
	T0    float64
}

// NewOperatingPoint builds a zero-valued operating point of the given
// horizon and dimensions.
func NewOperatingPoint(horizon, xDim int, uDims []int, t0 float64) OperatingPoint {
	xhat := make([]jointstate.JointState, horizon)
	uhat := make([]jointstate.ControlProfile, horizon)
	for k := 0; k < horizon; k++ {
		xhat[k] = make(jointstate.JointState, xDim)
		profile := make(jointstate.ControlProfile, len(uDims))
		for i, dim := range uDims {
			profile[i] = make(jointstate.PlayerControl, dim)
		}
		uhat[k] = profile
	}
	return OperatingPoint{Xhat: xhat, Uhat: uhat, T0: t0}
}

// Clone returns a deep copy of op.
func (op OperatingPoint) Clone() OperatingPoint {
	c := OperatingPoint{
		Xhat: make([]jointstate.JointState, len(op.Xhat)),
		Uhat: make([]jointstate.ControlProfile, len(op.Uhat)),
		T0:   op.T0,
	}
	for k := range op.Xhat {
		c.Xhat[k] = op.Xhat[k].Clone()
		c.Uhat[k] = op.Uhat[k].Clone()
	}
	return c
}
