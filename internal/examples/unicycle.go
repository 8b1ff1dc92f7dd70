// Package examples implements the small concrete dynamics and cost
// models spec.md §1 treats as out-of-scope "abstract collaborators"
// (unicycle, bicycle, collision cost, ...). They exist only far enough
// to drive this repository's own tests and example CLI (spec §8
// end-to-end scenarios), not as a general vehicle-dynamics library.
package examples

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// Unicycle is an N-player joint system where each player is an
// independent unicycle with state [x, y, theta, v] and control
// [omega, accel]. Grounded on the teacher's internal/models/pendulum.go
// shape (small struct implementing a Derive-style method) generalized
// from one body to N.
type Unicycle struct {
	numPlayers int
	rk4        dynamics.RK4
}

// NewUnicycle returns an N-player unicycle joint system.
func NewUnicycle(numPlayers int) *Unicycle {
	return &Unicycle{numPlayers: numPlayers}
}

func (u *Unicycle) NumPlayers() int { return u.numPlayers }
func (u *Unicycle) XDim() int       { return 4 * u.numPlayers }
func (u *Unicycle) UDim(int) int    { return 2 }

func (u *Unicycle) Derive(t float64, x jointstate.JointState, ctrl jointstate.ControlProfile) jointstate.JointState {
	xdot := make(jointstate.JointState, len(x))
	for i := 0; i < u.numPlayers; i++ {
		base := 4 * i
		theta, v := x[base+2], x[base+3]
		omega, accel := ctrl[i][0], ctrl[i][1]

		xdot[base+0] = v * math.Cos(theta)
		xdot[base+1] = v * math.Sin(theta)
		xdot[base+2] = omega
		xdot[base+3] = accel
	}
	return xdot
}

func (u *Unicycle) Integrate(t, dt float64, x jointstate.JointState, ctrl jointstate.ControlProfile) jointstate.JointState {
	return u.rk4.Step(u, x, ctrl, t, dt)
}

func (u *Unicycle) Linearize(t, dt float64, x jointstate.JointState, ctrl jointstate.ControlProfile) ([][]float64, [][][]float64) {
	var scratch dynamics.RK4
	integrate := func(xp jointstate.JointState, up jointstate.ControlProfile) jointstate.JointState {
		return scratch.Step(u, xp, up, t, dt)
	}
	return dynamics.NumericalLinearization(integrate, x, ctrl)
}

// PlayerState extracts player i's [x, y, theta, v] from a joint state.
func (u *Unicycle) PlayerState(x jointstate.JointState, i int) (px, py, theta, v float64) {
	base := 4 * i
	return x[base], x[base+1], x[base+2], x[base+3]
}
