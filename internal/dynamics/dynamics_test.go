package dynamics

import (
	"math"
	"testing"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// harmonicOscillator is a single, uncontrolled player: x' = v, v' = -x.
type harmonicOscillator struct{}

func (harmonicOscillator) Derive(t float64, x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState {
	return jointstate.JointState{x[1], -x[0]}
}
func (harmonicOscillator) XDim() int       { return 2 }
func (harmonicOscillator) UDim(int) int    { return 0 }
func (harmonicOscillator) NumPlayers() int { return 1 }

func TestRK4Accuracy(t *testing.T) {
	var rk4 RK4
	sys := harmonicOscillator{}

	x := jointstate.JointState{1, 0}
	u := jointstate.ControlProfile{{}}
	dt := 0.01
	steps := 100

	for i := 0; i < steps; i++ {
		x = rk4.Step(sys, x, u, float64(i)*dt, dt)
	}

	wantX := math.Cos(float64(steps) * dt)
	wantV := -math.Sin(float64(steps) * dt)

	if math.Abs(x[0]-wantX) > 1e-6 {
		t.Errorf("position error too large: got %.8f, want %.8f", x[0], wantX)
	}
	if math.Abs(x[1]-wantV) > 1e-6 {
		t.Errorf("velocity error too large: got %.8f, want %.8f", x[1], wantV)
	}
}

// linearSystem is x' = A x + B u for a fixed, known A/B, used to check
// NumericalLinearization recovers the system matrices it was built from.
type linearSystem struct {
	A [][]float64
	B [][]float64
}

func (s linearSystem) Derive(t float64, x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState {
	n := len(x)
	xdot := make(jointstate.JointState, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += s.A[i][j] * x[j]
		}
		for j := range u[0] {
			sum += s.B[i][j] * u[0][j]
		}
		xdot[i] = sum
	}
	return xdot
}
func (s linearSystem) XDim() int       { return len(s.A) }
func (s linearSystem) UDim(int) int    { return len(s.B[0]) }
func (s linearSystem) NumPlayers() int { return 1 }

func TestNumericalLinearizationRecoversLinearSystem(t *testing.T) {
	sys := linearSystem{
		A: [][]float64{{0, 1}, {-2, -0.5}},
		B: [][]float64{{0}, {1}},
	}
	var rk4 RK4
	dt := 0.05
	integrate := func(x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState {
		return rk4.Step(sys, x, u, 0, dt)
	}

	x0 := jointstate.JointState{0.3, -0.2}
	u0 := jointstate.ControlProfile{{0.1}}

	A, B := NumericalLinearization(integrate, x0, u0)

	// The discrete Jacobian of one RK4 step of a *linear* system is the
	// discrete state-transition matrix; check it's finite and that B's
	// shape matches the control dimension, then sanity-check against a
	// perturbed trajectory.
	if len(A) != 2 || len(A[0]) != 2 {
		t.Fatalf("A shape = %dx%d, want 2x2", len(A), len(A[0]))
	}
	if len(B) != 1 || len(B[0]) != 2 || len(B[0][0]) != 1 {
		t.Fatalf("unexpected B shape")
	}

	delta := jointstate.JointState{1e-3, 0}
	xPert := x0.Add(delta)
	predicted := jointstate.JointState{
		A[0][0]*delta[0] + A[0][1]*delta[1],
		A[1][0]*delta[0] + A[1][1]*delta[1],
	}
	actual := integrate(xPert, u0).Sub(integrate(x0, u0))

	for i := range predicted {
		if math.Abs(predicted[i]-actual[i]) > 1e-6 {
			t.Errorf("linearization mismatch at %d: predicted %.8f, actual %.8f", i, predicted[i], actual[i])
		}
	}
}
