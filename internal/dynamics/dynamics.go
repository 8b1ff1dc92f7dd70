// Package dynamics defines the discrete-time multi-player dynamics
// contract (spec §4.1): a deterministic Integrate map plus its
// first-order Linearize about an operating point.
package dynamics

import "github.com/rcaudy/ilqgames/internal/jointstate"

// Dynamics is the nonlinear discrete-time dynamics interface shared by
// every player in the game. Implementations are stateless and safe for
// concurrent read-only use across timesteps (spec §5).
type Dynamics interface {
	// Integrate advances the joint state one discrete timestep.
	Integrate(t, dt float64, x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState

	// Linearize returns the discrete-time Jacobians of Integrate about
	// (x, u): A = d(Integrate)/dx, B[i] = d(Integrate)/du_i. The returned
	// Jacobians must match Integrate to first order, or the LQ model used
	// by the solver is inconsistent (spec §4.1 invariant).
	Linearize(t, dt float64, x jointstate.JointState, u jointstate.ControlProfile) (A [][]float64, B [][][]float64)

	XDim() int
	UDim(i int) int
	NumPlayers() int
}

// ContinuousSystem is the underlying continuous-time ODE ẋ = f(t, x, u)
// that a RK4 integrator steps forward. Concrete dynamics (package
// internal/examples) implement this and embed RK4 to satisfy Dynamics.
type ContinuousSystem interface {
	Derive(t float64, x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState
	XDim() int
	UDim(i int) int
	NumPlayers() int
}

// RK4 performs one-step fourth-order Runge-Kutta integration of a
// ContinuousSystem, with scratch buffers preallocated on first use and
// reused thereafter (spec §5: no per-iteration allocation in the hot
// path).
type RK4 struct {
	k1, k2, k3, k4 jointstate.JointState
	scratch        jointstate.JointState
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make(jointstate.JointState, n)
		r.k2 = make(jointstate.JointState, n)
		r.k3 = make(jointstate.JointState, n)
		r.k4 = make(jointstate.JointState, n)
		r.scratch = make(jointstate.JointState, n)
	}
}

// Step integrates sys from x under control u over [t, t+dt].
func (r *RK4) Step(sys ContinuousSystem, x jointstate.JointState, u jointstate.ControlProfile, t, dt float64) jointstate.JointState {
	n := len(x)
	r.ensureScratch(n)

	k1 := sys.Derive(t, x, u)
	copy(r.k1, k1)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k1[i]
	}
	k2 := sys.Derive(t+dt*0.5, r.scratch, u)
	copy(r.k2, k2)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*0.5*r.k2[i]
	}
	k3 := sys.Derive(t+dt*0.5, r.scratch, u)
	copy(r.k3, k3)

	for i := 0; i < n; i++ {
		r.scratch[i] = x[i] + dt*r.k3[i]
	}
	k4 := sys.Derive(t+dt, r.scratch, u)
	copy(r.k4, k4)

	result := make(jointstate.JointState, n)
	dt6 := dt / 6.0
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}
