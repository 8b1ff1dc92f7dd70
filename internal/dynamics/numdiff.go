// Numerical (finite-difference) linearization, for dynamics that expose
// only Integrate and no analytic Jacobian. Central differences at the
// step size scipy/numdiff uses: h = eps^(1/3) * sign(x) * max(1, |x|).
package dynamics

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/jointstate"
)

var cubeEps = math.Pow(math.Nextafter(1, 2)-1, 1.0/3.0)

func centralStep(v float64) float64 {
	return math.Copysign(cubeEps, v) * math.Max(1.0, math.Abs(v))
}

// NumericalLinearization computes A = d(Integrate)/dx and B[i] =
// d(Integrate)/du_i by central differences around (x, u), using the
// caller-supplied Integrate closure (usually dyn.Integrate bound to a
// fixed t, dt). It is the fallback Linearize for dynamics that don't
// implement their own analytic Jacobian; accuracy matches the RK4
// integrator's local order, satisfying spec §4.1's consistency
// invariant to first order.
func NumericalLinearization(
	integrate func(x jointstate.JointState, u jointstate.ControlProfile) jointstate.JointState,
	x jointstate.JointState,
	u jointstate.ControlProfile,
) (A [][]float64, B [][][]float64) {

	n := len(x)
	numPlayers := len(u)

	A = make([][]float64, n)
	for i := range A {
		A[i] = make([]float64, n)
	}
	B = make([][][]float64, numPlayers)
	for i := range u {
		B[i] = make([][]float64, n)
		for r := range B[i] {
			B[i][r] = make([]float64, len(u[i]))
		}
	}

	// Columns of A: perturb each state component.
	xPert := x.Clone()
	for j := 0; j < n; j++ {
		h := centralStep(x[j])
		orig := xPert[j]

		xPert[j] = orig + h
		fPlus := integrate(xPert, u)
		xPert[j] = orig - h
		fMinus := integrate(xPert, u)
		xPert[j] = orig

		inv := 1.0 / (2 * h)
		for i := 0; i < n; i++ {
			A[i][j] = (fPlus[i] - fMinus[i]) * inv
		}
	}

	// Columns of B_p: perturb each control component of player p.
	uPert := u.Clone()
	for p := range u {
		for j := range u[p] {
			h := centralStep(u[p][j])
			orig := uPert[p][j]

			uPert[p][j] = orig + h
			fPlus := integrate(x, uPert)
			uPert[p][j] = orig - h
			fMinus := integrate(x, uPert)
			uPert[p][j] = orig

			inv := 1.0 / (2 * h)
			for i := 0; i < n; i++ {
				B[p][i][j] = (fPlus[i] - fMinus[i]) * inv
			}
		}
	}

	return A, B
}
