package playercost

import (
	"math"
	"testing"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

type constCost struct {
	value  float64
	expA   float64
	expSet bool
}

func (c constCost) Evaluate(t float64, x jointstate.JointState, u jointstate.ControlProfile) float64 {
	return c.value
}

func (c constCost) Quadraticize(t float64, x jointstate.JointState, u jointstate.ControlProfile) QuadraticCostApproximation {
	return QuadraticCostApproximation{}
}

func (c constCost) IsExponentiated() (float64, bool) {
	return c.expA, c.expSet
}

func TestTrajectoryCostRiskNeutralSums(t *testing.T) {
	cost := constCost{value: 2}
	xs := make([]jointstate.JointState, 5)
	us := make([]jointstate.ControlProfile, 5)

	got := TrajectoryCost(cost, 0, 0.1, xs, us)
	if math.Abs(got-10) > 1e-9 {
		t.Errorf("TrajectoryCost() = %v, want 10", got)
	}
}

func TestTrajectoryCostExponentiatedMatchesLogSumExp(t *testing.T) {
	cost := constCost{value: 1, expA: 2, expSet: true}
	xs := make([]jointstate.JointState, 3)
	us := make([]jointstate.ControlProfile, 3)

	got := TrajectoryCost(cost, 0, 0.1, xs, us)
	want := math.Log(3*math.Exp(2)) / 2
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("TrajectoryCost() = %v, want %v", got, want)
	}
}

func TestTrajectoryCostExponentiatedNonPositiveTotalIsInf(t *testing.T) {
	cost := constCost{value: -1e300, expA: 1, expSet: true}
	xs := make([]jointstate.JointState, 1)
	us := make([]jointstate.ControlProfile, 1)

	got := TrajectoryCost(cost, 0, 0.1, xs, us)
	if !math.IsInf(got, 1) {
		t.Errorf("TrajectoryCost() = %v, want +Inf", got)
	}
}
