package examples

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// Bicycle is an N-player joint system where each player is a kinematic
// bicycle with state [x, y, theta, v, phi] (phi: steering angle) and
// control [phi_dot, accel], used for spec §8 scenarios 2 and 3
// (pursuer-evader and multi-car collision avoidance). Wheelbase is a
// per-player constant.
type Bicycle struct {
	numPlayers int
	wheelbase  float64
	rk4        dynamics.RK4
}

// NewBicycle returns an N-player bicycle joint system with the given
// wheelbase (applied uniformly to every player).
func NewBicycle(numPlayers int, wheelbase float64) *Bicycle {
	if wheelbase <= 0 {
		wheelbase = 2.5
	}
	return &Bicycle{numPlayers: numPlayers, wheelbase: wheelbase}
}

func (b *Bicycle) NumPlayers() int { return b.numPlayers }
func (b *Bicycle) XDim() int       { return 5 * b.numPlayers }
func (b *Bicycle) UDim(int) int    { return 2 }

func (b *Bicycle) Derive(t float64, x jointstate.JointState, ctrl jointstate.ControlProfile) jointstate.JointState {
	xdot := make(jointstate.JointState, len(x))
	for i := 0; i < b.numPlayers; i++ {
		base := 5 * i
		theta, v, phi := x[base+2], x[base+3], x[base+4]
		phiDot, accel := ctrl[i][0], ctrl[i][1]

		xdot[base+0] = v * math.Cos(theta)
		xdot[base+1] = v * math.Sin(theta)
		xdot[base+2] = v * math.Tan(phi) / b.wheelbase
		xdot[base+3] = accel
		xdot[base+4] = phiDot
	}
	return xdot
}

func (b *Bicycle) Integrate(t, dt float64, x jointstate.JointState, ctrl jointstate.ControlProfile) jointstate.JointState {
	return b.rk4.Step(b, x, ctrl, t, dt)
}

func (b *Bicycle) Linearize(t, dt float64, x jointstate.JointState, ctrl jointstate.ControlProfile) ([][]float64, [][][]float64) {
	var scratch dynamics.RK4
	integrate := func(xp jointstate.JointState, up jointstate.ControlProfile) jointstate.JointState {
		return scratch.Step(b, xp, up, t, dt)
	}
	return dynamics.NumericalLinearization(integrate, x, ctrl)
}

// PlayerState extracts player i's [x, y, theta, v, phi] from a joint state.
func (b *Bicycle) PlayerState(x jointstate.JointState, i int) (px, py, theta, v, phi float64) {
	base := 5 * i
	return x[base], x[base+1], x[base+2], x[base+3], x[base+4]
}
