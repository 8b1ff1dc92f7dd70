package playercost

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

// QuadraticCost assembles a player's cost from independently specified
// state- and control-cost terms, summing each term's contribution into
// the appropriate block (spec §4.2). Self int is this cost's owning
// player index, used to select which control block must be regularized
// to PD.
type QuadraticCost struct {
	Self        int
	XDim        int
	UDims       []int // per player, length NumPlayers
	StateTerms  []StateCostTerm
	ControlTerms []ControlCostTerm
	// ExpConstant is this player's risk-sensitivity constant a. Zero
	// disables exponentiation. Spec §4.6: all players sharing a risk-
	// sensitive solve must use the same a.
	ExpConstant float64

	// Eps is the eigenvalue floor applied during regularization. Zero
	// selects a small default.
	Eps float64
}

func (c *QuadraticCost) eps() float64 {
	if c.Eps > 0 {
		return c.Eps
	}
	return 1e-6
}

func (c *QuadraticCost) Evaluate(t float64, x jointstate.JointState, u jointstate.ControlProfile) float64 {
	total := 0.0
	for _, st := range c.StateTerms {
		total += st.Evaluate(t, x)
	}
	for _, ct := range c.ControlTerms {
		total += ct.Evaluate(t, u[ct.PlayerIndex()])
	}
	return total
}

func (c *QuadraticCost) IsExponentiated() (float64, bool) {
	if c.ExpConstant > 0 {
		return c.ExpConstant, true
	}
	return 0, false
}

func zeros(n, m int) [][]float64 {
	z := make([][]float64, n)
	for i := range z {
		z[i] = make([]float64, m)
	}
	return z
}

func (c *QuadraticCost) rawQuadraticize(t float64, x jointstate.JointState, u jointstate.ControlProfile) (Q [][]float64, l []float64, Ruu [][][]float64, Ru [][]float64) {
	Q = zeros(c.XDim, c.XDim)
	l = make([]float64, c.XDim)
	for _, st := range c.StateTerms {
		Qt, lt := st.Quadraticize(t, x)
		for i := 0; i < c.XDim; i++ {
			l[i] += lt[i]
			for j := 0; j < c.XDim; j++ {
				Q[i][j] += Qt[i][j]
			}
		}
	}

	Ruu = make([][][]float64, len(c.UDims))
	Ru = make([][]float64, len(c.UDims))
	for j, dim := range c.UDims {
		Ruu[j] = zeros(dim, dim)
		Ru[j] = make([]float64, dim)
	}
	for _, ct := range c.ControlTerms {
		j := ct.PlayerIndex()
		Rt, rt := ct.Quadraticize(t, u[j])
		dim := c.UDims[j]
		for a := 0; a < dim; a++ {
			Ru[j][a] += rt[a]
			for b := 0; b < dim; b++ {
				Ruu[j][a][b] += Rt[a][b]
			}
		}
	}
	return
}

// Quadraticize implements PlayerCost.Quadraticize: it sums raw term
// contributions, folds in the exponential reshaping of spec §4.6 when
// applicable, then regularizes the state Hessian and this player's own
// control Hessian to PD (spec §4.2).
func (c *QuadraticCost) Quadraticize(t float64, x jointstate.JointState, u jointstate.ControlProfile) QuadraticCostApproximation {
	Q, l, Ruu, Ru := c.rawQuadraticize(t, x, u)

	if a, ok := c.IsExponentiated(); ok {
		cTilde := c.Evaluate(t, x, u)
		factor := math.Exp(a * cTilde)

		// gradient: a * exp(a*c) * g ; Hessian: exp(a*c) * (a*H + a^2 * g g^T)
		Q = exponentiateHessian(Q, l, a, factor)
		for j := range Ruu {
			Ruu[j] = exponentiateHessian(Ruu[j], Ru[j], a, factor)
		}
		l = exponentiateGradient(l, a, factor)
		for j := range Ru {
			Ru[j] = exponentiateGradient(Ru[j], a, factor)
		}
	}

	Q = regularizeSymmetricPD(Q, c.eps())
	if c.Self >= 0 && c.Self < len(Ruu) {
		Ruu[c.Self] = regularizeSymmetricPD(Ruu[c.Self], c.eps())
	}

	return QuadraticCostApproximation{Q: Q, L: l, Ruu: Ruu, Ru: Ru}
}

func exponentiateGradient(g []float64, a, factor float64) []float64 {
	out := make([]float64, len(g))
	for i, v := range g {
		out[i] = a * factor * v
	}
	return out
}

func exponentiateHessian(H [][]float64, g []float64, a, factor float64) [][]float64 {
	n := len(g)
	out := zeros(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			out[i][j] = factor * (a*H[i][j] + a*a*g[i]*g[j])
		}
	}
	return out
}
