package examples

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// GoalCost penalizes squared distance from (XIdx, YIdx) in the joint
// state to (TargetX, TargetY) — the goal-distance state cost of spec §8
// scenario 1. Its Hessian/gradient are exact (the term is already
// quadratic in state).
type GoalCost struct {
	XIdx, YIdx       int
	TargetX, TargetY float64
	Weight           float64
	xDim             int
}

// NewGoalCost returns a GoalCost over a joint state of dimension xDim.
func NewGoalCost(xDim, xIdx, yIdx int, targetX, targetY, weight float64) *GoalCost {
	return &GoalCost{XIdx: xIdx, YIdx: yIdx, TargetX: targetX, TargetY: targetY, Weight: weight, xDim: xDim}
}

func (g *GoalCost) Evaluate(t float64, x jointstate.JointState) float64 {
	dx, dy := x[g.XIdx]-g.TargetX, x[g.YIdx]-g.TargetY
	return g.Weight * (dx*dx + dy*dy)
}

func (g *GoalCost) Quadraticize(t float64, x jointstate.JointState) ([][]float64, []float64) {
	Q := zeroMat(g.xDim)
	l := make([]float64, g.xDim)

	dx, dy := x[g.XIdx]-g.TargetX, x[g.YIdx]-g.TargetY
	l[g.XIdx] = 2 * g.Weight * dx
	l[g.YIdx] = 2 * g.Weight * dy
	Q[g.XIdx][g.XIdx] = 2 * g.Weight
	Q[g.YIdx][g.YIdx] = 2 * g.Weight
	return Q, l
}

func zeroMat(n int) [][]float64 {
	m := make([][]float64, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// QuadraticControlCost penalizes ||u||^2 for a single player's control,
// the control_cost_weight of spec §6.
type QuadraticControlCost struct {
	Player int
	Weight float64
}

func NewQuadraticControlCost(player int, weight float64) *QuadraticControlCost {
	return &QuadraticControlCost{Player: player, Weight: weight}
}

func (c *QuadraticControlCost) PlayerIndex() int { return c.Player }

func (c *QuadraticControlCost) Evaluate(t float64, u jointstate.PlayerControl) float64 {
	sum := 0.0
	for _, v := range u {
		sum += v * v
	}
	return c.Weight * sum
}

func (c *QuadraticControlCost) Quadraticize(t float64, u jointstate.PlayerControl) ([][]float64, []float64) {
	n := len(u)
	R := zeroMat(n)
	r := make([]float64, n)
	for i, v := range u {
		R[i][i] = 2 * c.Weight
		r[i] = 2 * c.Weight * v
	}
	return R, r
}

// ProximityCost is a signed-distance collision-avoidance cost between
// two players' (x, y) positions: a squared-hinge penalty that activates
// only once the pair is closer than MinDistance. Quadraticized by
// central finite differences (the hinge makes the analytic Hessian
// case-heavy and error-prone to hand-derive; spec §9 explicitly expects
// non-PSD Hessians here, which playercost's eigenvalue-floor
// regularization handles regardless of how the raw Hessian was
// obtained).
type ProximityCost struct {
	XIdxA, YIdxA int
	XIdxB, YIdxB int
	MinDistance  float64
	Weight       float64
	xDim         int
}

func NewProximityCost(xDim, xIdxA, yIdxA, xIdxB, yIdxB int, minDistance, weight float64) *ProximityCost {
	return &ProximityCost{XIdxA: xIdxA, YIdxA: yIdxA, XIdxB: xIdxB, YIdxB: yIdxB, MinDistance: minDistance, Weight: weight, xDim: xDim}
}

func (p *ProximityCost) evalAt(x jointstate.JointState) float64 {
	dx := x[p.XIdxA] - x[p.XIdxB]
	dy := x[p.YIdxA] - x[p.YIdxB]
	d := math.Hypot(dx, dy)
	gap := p.MinDistance - d
	if gap <= 0 {
		return 0
	}
	return p.Weight * gap * gap
}

func (p *ProximityCost) Evaluate(t float64, x jointstate.JointState) float64 {
	return p.evalAt(x)
}

func (p *ProximityCost) Quadraticize(t float64, x jointstate.JointState) ([][]float64, []float64) {
	indices := []int{p.XIdxA, p.YIdxA, p.XIdxB, p.YIdxB}
	Qsub, lsub := numericalHessian(p.evalAt, x, indices)

	Q := zeroMat(p.xDim)
	l := make([]float64, p.xDim)
	for a, ia := range indices {
		l[ia] = lsub[a]
		for b, ib := range indices {
			Q[ia][ib] = Qsub[a][b]
		}
	}
	return Q, l
}

// numericalHessian computes the gradient and Hessian of f, a function of
// the full joint state, restricted to perturbations along the given
// indices only (every other component held fixed), by central finite
// differences.
func numericalHessian(f func(jointstate.JointState) float64, x jointstate.JointState, indices []int) ([][]float64, []float64) {
	const h = 1e-4
	n := len(indices)
	l := make([]float64, n)
	Q := zeroMat(n)

	xp := x.Clone()
	f0 := f(x)

	for a, ia := range indices {
		orig := xp[ia]
		xp[ia] = orig + h
		fPlus := f(xp)
		xp[ia] = orig - h
		fMinus := f(xp)
		xp[ia] = orig

		l[a] = (fPlus - fMinus) / (2 * h)
		Q[a][a] = (fPlus - 2*f0 + fMinus) / (h * h)
	}

	for a, ia := range indices {
		for b, ib := range indices {
			if b <= a {
				continue
			}
			origA, origB := xp[ia], xp[ib]

			xp[ia], xp[ib] = origA+h, origB+h
			fpp := f(xp)
			xp[ia], xp[ib] = origA+h, origB-h
			fpm := f(xp)
			xp[ia], xp[ib] = origA-h, origB+h
			fmp := f(xp)
			xp[ia], xp[ib] = origA-h, origB-h
			fmm := f(xp)
			xp[ia], xp[ib] = origA, origB

			val := (fpp - fpm - fmp + fmm) / (4 * h * h)
			Q[a][b] = val
			Q[b][a] = val
		}
	}

	return Q, l
}
