package examples

import (
	"math"
	"testing"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

func TestGoalCostEvaluateAndQuadraticize(t *testing.T) {
	g := NewGoalCost(4, 0, 1, 3, 4, 2)
	x := jointstate.JointState{3, 0, 0, 0}

	got := g.Evaluate(0, x)
	want := 2 * (0*0 + 16.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}

	Q, l := g.Quadraticize(0, x)
	if math.Abs(Q[0][0]-4) > 1e-9 || math.Abs(Q[1][1]-4) > 1e-9 {
		t.Errorf("Q diag = [%v %v], want [4 4]", Q[0][0], Q[1][1])
	}
	if math.Abs(l[1]-(2*2*(0-4))) > 1e-9 {
		t.Errorf("l[1] = %v, want %v", l[1], 2*2*(0-4))
	}
}

func TestQuadraticControlCost(t *testing.T) {
	c := NewQuadraticControlCost(1, 3)
	if c.PlayerIndex() != 1 {
		t.Errorf("PlayerIndex() = %d, want 1", c.PlayerIndex())
	}
	u := jointstate.PlayerControl{1, 2}
	got := c.Evaluate(0, u)
	want := 3 * (1.0 + 4.0)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Evaluate() = %v, want %v", got, want)
	}

	R, r := c.Quadraticize(0, u)
	if R[0][0] != 6 || R[1][1] != 6 {
		t.Errorf("R diag = [%v %v], want [6 6]", R[0][0], R[1][1])
	}
	if r[0] != 6 || r[1] != 12 {
		t.Errorf("r = [%v %v], want [6 12]", r[0], r[1])
	}
}

func TestProximityCostZeroOutsideMinDistance(t *testing.T) {
	p := NewProximityCost(4, 0, 1, 2, 3, 1.0, 10)
	x := jointstate.JointState{0, 0, 5, 5} // far apart
	if got := p.Evaluate(0, x); got != 0 {
		t.Errorf("Evaluate() = %v, want 0 when outside min distance", got)
	}
	Q, l := p.Quadraticize(0, x)
	for i := range Q {
		for j := range Q[i] {
			if Q[i][j] != 0 {
				t.Errorf("Q[%d][%d] = %v, want 0 outside the active region", i, j, Q[i][j])
			}
		}
		if l[i] != 0 {
			t.Errorf("l[%d] = %v, want 0 outside the active region", i, l[i])
		}
	}
}

func TestProximityCostPenalizesClosePairs(t *testing.T) {
	p := NewProximityCost(4, 0, 1, 2, 3, 2.0, 10)
	x := jointstate.JointState{0, 0, 1, 0} // distance 1 < minDistance 2
	got := p.Evaluate(0, x)
	if got <= 0 {
		t.Errorf("Evaluate() = %v, want > 0 when inside min distance", got)
	}

	Q, l := p.Quadraticize(0, x)
	hasNonzero := false
	for i := range Q {
		for j := range Q[i] {
			if Q[i][j] != 0 {
				hasNonzero = true
			}
		}
		if l[i] != 0 {
			hasNonzero = true
		}
	}
	if !hasNonzero {
		t.Error("expected a nonzero quadratic approximation inside the active region")
	}
}

func TestProximityCostSymmetricHessian(t *testing.T) {
	p := NewProximityCost(4, 0, 1, 2, 3, 2.0, 10)
	x := jointstate.JointState{0, 0, 1, 0.3}
	Q, _ := p.Quadraticize(0, x)
	for i := range Q {
		for j := range Q[i] {
			if math.Abs(Q[i][j]-Q[j][i]) > 1e-6 {
				t.Errorf("Q[%d][%d]=%v != Q[%d][%d]=%v", i, j, Q[i][j], j, i, Q[j][i])
			}
		}
	}
}
