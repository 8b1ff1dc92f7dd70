// Package lqgame implements the coupled Riccati recursion for N-player
// time-varying LQ games (spec §4.3) — the algorithmic core of this
// repository. Given per-timestep linearized dynamics and quadraticized
// costs, Solve produces affine feedback (P_i(k), alpha_i(k)) for every
// player constituting a feedback Nash equilibrium of the LQ game.
package lqgame

import "github.com/rcaudy/ilqgames/internal/playercost"

// StepLinearization holds the discrete-time Jacobians of the dynamics
// at one timestep (spec §3 LinearDynamicsApproximation).
type StepLinearization struct {
	A [][]float64   // x_dim x x_dim
	B [][][]float64 // per player: x_dim x u_dim_i
}

// StepCost holds every player's quadratic cost approximation at one
// timestep.
type StepCost struct {
	Players []playercost.QuadraticCostApproximation
}

// PlayerFeedback is one player's affine feedback strategy over the
// horizon: P[k] is u_dim_i x x_dim, Alpha[k] is length u_dim_i. Z0 and
// Zeta0 are this player's quadratic/linear cost-to-go at the start of
// the horizon (Z_i(0), zeta_i(0)), exposed for verbose progress
// reporting (internal/ilqlog.Logger.Verbose).
type PlayerFeedback struct {
	P     [][][]float64
	Alpha [][]float64
	Z0    [][]float64
	Zeta0 []float64
}

// Solve runs the backward coupled Riccati recursion over a horizon of
// T = len(lin) steps and returns one PlayerFeedback per player.
//
// Terminal cost placement (spec §9 Open Question, resolved in
// DESIGN.md): Solve initializes Z_i(T)=0, zeta_i(T)=0 and folds any
// terminal weighting into the stage-(T-1) QuadraticCostApproximation
// supplied by the caller.
//
// Sign convention (spec §9): alpha is defined so that the rollout
// applies u_i(k) = u_hat_i(k) - P_i(k)*x_delta(k) - alpha_i(k); this
// recursion's Y_alpha and the beta(k)/zeta_i(k) propagation are written
// consistently with that convention (internal/ilqsolver's rollout
// applies it).
func Solve(lin []StepLinearization, cost []StepCost, xDim int, uDims []int) ([]PlayerFeedback, error) {
	T := len(lin)
	n := len(uDims)

	feedback := make([]PlayerFeedback, n)
	for i := range feedback {
		feedback[i] = PlayerFeedback{
			P:     make([][][]float64, T),
			Alpha: make([][]float64, T),
		}
	}

	// Z_i(k+1), zeta_i(k+1); initialized to the terminal condition Z_i(T)=0.
	Z := make([][][]float64, n)
	zeta := make([][]float64, n)
	for i := 0; i < n; i++ {
		Z[i] = zerosMat(xDim, xDim)
		zeta[i] = zerosVec(xDim)
	}

	for k := T - 1; k >= 0; k-- {
		A := lin[k].A
		B := lin[k].B
		stageCost := cost[k].Players

		S, Yp, Ya := buildCouplingSystem(A, B, Z, zeta, stageCost, uDims, xDim)

		rhs := zerosMat(len(S), xDim+1)
		for r := range rhs {
			copy(rhs[r][:xDim], Yp[r])
			rhs[r][xDim] = Ya[r]
		}
		X, err := blockSolve(S, rhs)
		if err != nil {
			return nil, err
		}

		P := make([][][]float64, n)
		alpha := make([][]float64, n)
		offset := 0
		for i, dim := range uDims {
			Pi := zerosMat(dim, xDim)
			alphai := zerosVec(dim)
			for r := 0; r < dim; r++ {
				copy(Pi[r], X[offset+r][:xDim])
				alphai[r] = X[offset+r][xDim]
			}
			P[i] = Pi
			alpha[i] = alphai
			feedback[i].P[k] = Pi
			feedback[i].Alpha[k] = alphai
			offset += dim
		}

		// F(k) = A(k) - sum_i B_i(k) P_i(k); beta(k) = -sum_i B_i(k) alpha_i(k).
		F := cloneMat(A)
		beta := zerosVec(xDim)
		for i := range P {
			BP := mul(B[i], P[i])
			F = subMat(F, BP)
			beta = subVec(beta, mulVec(B[i], alpha[i]))
		}
		Ft := transpose(F)

		newZ := make([][][]float64, n)
		newZeta := make([][]float64, n)
		for i := 0; i < n; i++ {
			pc := stageCost[i]

			term := mul(Ft, mul(Z[i], F))
			Zi := add(pc.Q, term)
			for j := range P {
				Pj := P[j]
				Rij := pc.Ruu[j]
				PjT := transpose(Pj)
				Zi = add(Zi, mul(PjT, mul(Rij, Pj)))
			}
			newZ[i] = Zi

			inner := addVec(zeta[i], mulVec(Z[i], beta))
			zetai := addVec(pc.L, mulVec(Ft, inner))
			for j := range P {
				Pj := P[j]
				Rij := pc.Ruu[j]
				rij := pc.Ru[j]
				PjT := transpose(Pj)
				term := subVec(mulVec(Rij, alpha[j]), rij)
				zetai = addVec(zetai, mulVec(PjT, term))
			}
			newZeta[i] = zetai
		}
		Z = newZ
		zeta = newZeta
	}

	for i := range feedback {
		feedback[i].Z0 = Z[i]
		feedback[i].Zeta0 = zeta[i]
	}

	return feedback, nil
}

func cloneMat(A [][]float64) [][]float64 {
	C := make([][]float64, len(A))
	for i := range A {
		C[i] = append([]float64(nil), A[i]...)
	}
	return C
}

func subMat(A, B [][]float64) [][]float64 {
	rows := len(A)
	cols := 0
	if rows > 0 {
		cols = len(A[0])
	}
	C := zerosMat(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			C[i][j] = A[i][j] - B[i][j]
		}
	}
	return C
}
