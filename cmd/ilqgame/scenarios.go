package main

import (
	"fmt"
	"math"

	"github.com/rcaudy/ilqgames/internal/dynamics"
	"github.com/rcaudy/ilqgames/internal/examples"
	"github.com/rcaudy/ilqgames/internal/ilqconfig"
	"github.com/rcaudy/ilqgames/internal/ilqsolver"
	"github.com/rcaudy/ilqgames/internal/jointstate"
	"github.com/rcaudy/ilqgames/internal/playercost"
	"github.com/rcaudy/ilqgames/internal/strategy"
)

// Scenario bundles everything ilqsolver.Solve needs: the dynamics, each
// player's cost, the initial joint state, the starting operating point,
// and the solver configuration.
type Scenario struct {
	Dynamics dynamics.Dynamics
	Costs    []playercost.PlayerCost
	X0       jointstate.JointState
	Initial  strategy.OperatingPoint
	Config   ilqsolver.Config
}

func solverConfigFrom(spec *ilqconfig.ScenarioSpec) ilqsolver.Config {
	mode := ilqsolver.Feedback
	if spec.Solver.OpenLoop {
		mode = ilqsolver.OpenLoop
	}
	return ilqsolver.Config{
		TimeStep:             spec.Solver.TimeStep,
		MaxIterations:        spec.Solver.MaxIterations,
		ConvergenceTolerance: spec.Solver.ConvergenceTolerance,
		InitialAlphaScaling:  spec.Solver.InitialAlphaScaling,
		TrustRegionSize:      spec.Solver.TrustRegionSize,
		ExponentialConstant:  spec.Solver.ExponentialConstant,
		Mode:                 mode,
	}
}

func buildScenario(spec *ilqconfig.ScenarioSpec) (*Scenario, error) {
	switch spec.Scenario {
	case "unicycle_goal":
		return buildUnicycleGoal(spec), nil
	case "reach_avoid":
		return buildReachAvoid(spec), nil
	case "three_player_collision":
		return buildThreePlayerCollision(spec), nil
	default:
		return nil, fmt.Errorf("unknown scenario %q", spec.Scenario)
	}
}

// buildUnicycleGoal is spec §8 scenario 1: a single unicycle driven to
// the origin.
func buildUnicycleGoal(spec *ilqconfig.ScenarioSpec) *Scenario {
	dyn := examples.NewUnicycle(1)
	T := spec.Solver.Horizon()

	x0 := jointstate.JointState{1, 1, 0, 1}
	if spec.InitialState.PX0 != 0 || spec.InitialState.PY0 != 0 {
		x0 = jointstate.JointState{spec.InitialState.PX0, spec.InitialState.PY0, spec.InitialState.Theta0, spec.InitialState.V0}
	}

	goal := examples.NewGoalCost(4, 0, 1, 0, 0, 1.0)
	ctrl := examples.NewQuadraticControlCost(0, spec.Solver.ControlCostWeight)
	cost := &playercost.QuadraticCost{
		Self:        0,
		XDim:        4,
		UDims:       []int{2},
		StateTerms:  []playercost.StateCostTerm{goal},
		ControlTerms: []playercost.ControlCostTerm{ctrl},
		ExpConstant: spec.Solver.ExponentialConstant,
	}

	initial := strategy.NewOperatingPoint(T, 4, []int{2}, 0)
	for k := range initial.Xhat {
		copy(initial.Xhat[k], x0)
	}

	return &Scenario{
		Dynamics: dyn,
		Costs:    []playercost.PlayerCost{cost},
		X0:       x0,
		Initial:  initial,
		Config:   solverConfigFrom(spec),
	}
}

// buildReachAvoid is spec §8 scenario 2: a pursuer-evader pair with
// bicycle dynamics and a signed-distance state cost.
func buildReachAvoid(spec *ilqconfig.ScenarioSpec) *Scenario {
	dyn := examples.NewBicycle(2, 2.5)
	T := spec.Solver.Horizon()

	theta0 := spec.InitialState.Theta0
	if theta0 == 0 {
		theta0 = math.Pi/2 - 1e-4
	}
	v0 := spec.InitialState.V0
	if v0 == 0 {
		v0 = 0.5
	}

	x0 := jointstate.JointState{
		0, -7, theta0, v0, 0, // pursuer: x,y,theta,v,phi
		0, 0, 0, 0, 0, // evader
	}

	minDist := spec.InitialState.D0
	if minDist <= 0 {
		minDist = 1.0
	}

	proximity := examples.NewProximityCost(10, 0, 1, 5, 6, minDist, 50.0)
	goal0 := examples.NewGoalCost(10, 0, 1, 0, 0, 1.0)
	goal1 := examples.NewGoalCost(10, 5, 6, 0, 0, 0.1)
	ctrl0 := examples.NewQuadraticControlCost(0, spec.Solver.ControlCostWeight)
	ctrl1 := examples.NewQuadraticControlCost(1, spec.Solver.ControlCostWeight)

	cost0 := &playercost.QuadraticCost{
		Self:        0,
		XDim:        10,
		UDims:       []int{2, 2},
		StateTerms:  []playercost.StateCostTerm{goal0, proximity},
		ControlTerms: []playercost.ControlCostTerm{ctrl0},
		ExpConstant: spec.Solver.ExponentialConstant,
	}
	cost1 := &playercost.QuadraticCost{
		Self:        1,
		XDim:        10,
		UDims:       []int{2, 2},
		StateTerms:  []playercost.StateCostTerm{goal1, proximity},
		ControlTerms: []playercost.ControlCostTerm{ctrl1},
		ExpConstant: spec.Solver.ExponentialConstant,
	}

	initial := strategy.NewOperatingPoint(T, 10, []int{2, 2}, 0)
	for k := range initial.Xhat {
		copy(initial.Xhat[k], x0)
	}

	return &Scenario{
		Dynamics: dyn,
		Costs:    []playercost.PlayerCost{cost0, cost1},
		X0:       x0,
		Initial:  initial,
		Config:   solverConfigFrom(spec),
	}
}

// buildThreePlayerCollision is spec §8 scenario 3: three cars in
// equilateral formation at radius d0, headed inward with a small
// perturbation.
func buildThreePlayerCollision(spec *ilqconfig.ScenarioSpec) *Scenario {
	dyn := examples.NewBicycle(3, 2.5)
	T := spec.Solver.Horizon()

	d0 := spec.InitialState.D0
	if d0 <= 0 {
		d0 = 5.0
	}
	v0 := spec.InitialState.V0
	if v0 == 0 {
		v0 = 5.0
	}

	x0 := make(jointstate.JointState, 15)
	for i := 0; i < 3; i++ {
		angle := 2 * math.Pi * float64(i) / 3
		px := d0 * math.Cos(angle)
		py := d0 * math.Sin(angle)
		heading := angle + math.Pi + 0.1 // pointed inward, plus perturbation
		base := 5 * i
		x0[base+0] = px
		x0[base+1] = py
		x0[base+2] = heading
		x0[base+3] = v0
		x0[base+4] = 0
	}

	minDist := 1.0
	costs := make([]playercost.PlayerCost, 3)
	for i := 0; i < 3; i++ {
		var stateTerms []playercost.StateCostTerm
		goal := examples.NewGoalCost(15, 5*i, 5*i+1, 0, 0, 0.1)
		stateTerms = append(stateTerms, goal)
		for j := 0; j < 3; j++ {
			if j == i {
				continue
			}
			stateTerms = append(stateTerms, examples.NewProximityCost(15, 5*i, 5*i+1, 5*j, 5*j+1, minDist, 50.0))
		}
		ctrl := examples.NewQuadraticControlCost(i, spec.Solver.ControlCostWeight)
		costs[i] = &playercost.QuadraticCost{
			Self:        i,
			XDim:        15,
			UDims:       []int{2, 2, 2},
			StateTerms:  stateTerms,
			ControlTerms: []playercost.ControlCostTerm{ctrl},
			ExpConstant: spec.Solver.ExponentialConstant,
		}
	}

	initial := strategy.NewOperatingPoint(T, 15, []int{2, 2, 2}, 0)
	for k := range initial.Xhat {
		copy(initial.Xhat[k], x0)
	}

	return &Scenario{
		Dynamics: dyn,
		Costs:    costs,
		X0:       x0,
		Initial:  initial,
		Config:   solverConfigFrom(spec),
	}
}
