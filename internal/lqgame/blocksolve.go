package lqgame

import (
	"math"

	"github.com/rcaudy/ilqgames/internal/ilqerrors"
)

// blockSolve solves S * X = RHS for X, where S is square (n x n) and
// RHS has n rows and any number of columns, via Gaussian elimination
// with partial pivoting — a single factorization applied to every
// right-hand-side column at once, per spec §4.3 step 2. Grounded on the
// pivoted-elimination/singularity-detection shape of
// curioloop-optimizer's slsqp/lsei.go and slsqp/hfti.go, the only dense
// linear solves in the retrieved example pack.
//
// If a pivot is smaller than tol, a small diagonal regularizer is added
// once and elimination retried (spec §4.3 edge cases: "a small diagonal
// regularizer on S(k) is permitted when diagonal blocks themselves are
// PD but the full block matrix is near-singular"). The retry is only
// attempted when every diagonal entry of S exceeds tol; otherwise, or if
// the regularized system is still singular, ilqerrors.ErrLinAlgSingular
// is returned.
func blockSolve(S [][]float64, rhs [][]float64) ([][]float64, error) {
	n := len(S)
	if n == 0 {
		return nil, nil
	}
	const tol = 1e-10
	const regEps = 1e-8

	X, err := gaussianEliminate(S, rhs, tol)
	if err == nil {
		return X, nil
	}

	for i := 0; i < n; i++ {
		if S[i][i] <= tol {
			return nil, ilqerrors.ErrLinAlgSingular
		}
	}

	reg := zerosMat(n, n)
	for i := range reg {
		copy(reg[i], S[i])
		reg[i][i] += regEps
	}
	X, err = gaussianEliminate(reg, rhs, tol)
	if err != nil {
		return nil, ilqerrors.ErrLinAlgSingular
	}
	return X, nil
}

// gaussianEliminate solves S X = RHS via partial-pivot Gaussian
// elimination. S and RHS are not mutated; internal copies are used.
func gaussianEliminate(S [][]float64, rhs [][]float64, tol float64) ([][]float64, error) {
	n := len(S)
	cols := len(rhs[0])

	// Augmented matrix [A | rhs], copied so callers' inputs stay intact.
	aug := make([][]float64, n)
	for i := 0; i < n; i++ {
		aug[i] = make([]float64, n+cols)
		copy(aug[i][:n], S[i])
		copy(aug[i][n:], rhs[i])
	}

	for col := 0; col < n; col++ {
		// Partial pivot.
		pivotRow := col
		best := math.Abs(aug[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(aug[r][col]); v > best {
				best = v
				pivotRow = r
			}
		}
		if best < tol {
			return nil, ilqerrors.ErrLinAlgSingular
		}
		if pivotRow != col {
			aug[col], aug[pivotRow] = aug[pivotRow], aug[col]
		}

		pivot := aug[col][col]
		for r := 0; r < n; r++ {
			if r == col {
				continue
			}
			factor := aug[r][col] / pivot
			if factor == 0 {
				continue
			}
			for c := col; c < n+cols; c++ {
				aug[r][c] -= factor * aug[col][c]
			}
		}
	}

	X := zerosMat(n, cols)
	for i := 0; i < n; i++ {
		pivot := aug[i][i]
		for c := 0; c < cols; c++ {
			X[i][c] = aug[i][n+c] / pivot
		}
	}
	return X, nil
}
