package playercost

import "math"

// regularizeSymmetricPD floors the eigenvalues of a symmetric matrix H
// at eps, returning a new positive-definite matrix. Uses the cyclic
// Jacobi eigenvalue algorithm, adequate for the small (state/control
// dimension) matrices this solver works with (spec §9: "regularize on a
// per-Hessian basis by eigenvalue flooring").
func regularizeSymmetricPD(H [][]float64, eps float64) [][]float64 {
	n := len(H)
	if n == 0 {
		return H
	}

	// Work on a symmetrized copy; small asymmetries from summed term
	// contributions should not leak into the eigendecomposition.
	A := make([][]float64, n)
	for i := range A {
		A[i] = make([]float64, n)
		for j := range A[i] {
			A[i][j] = 0.5 * (H[i][j] + H[j][i])
		}
	}

	V := identity(n)
	jacobiEigen(A, V, 60, 1e-12)

	// A is now (approximately) diagonal; its diagonal holds the
	// eigenvalues. Floor them and reconstruct H = V * diag(max(lambda,eps)) * V^T.
	out := zeros(n, n)
	for k := 0; k < n; k++ {
		lambda := math.Max(A[k][k], eps)
		for i := 0; i < n; i++ {
			if V[i][k] == 0 {
				continue
			}
			for j := 0; j < n; j++ {
				out[i][j] += lambda * V[i][k] * V[j][k]
			}
		}
	}
	return out
}

func identity(n int) [][]float64 {
	m := zeros(n, n)
	for i := range m {
		m[i][i] = 1
	}
	return m
}

// jacobiEigen diagonalizes symmetric A in place via cyclic Jacobi
// rotations, accumulating the eigenvector rotations into V (which must
// start as the identity).
func jacobiEigen(A, V [][]float64, maxSweeps int, tol float64) {
	n := len(A)
	for sweep := 0; sweep < maxSweeps; sweep++ {
		off := 0.0
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				off += A[i][j] * A[i][j]
			}
		}
		if off < tol {
			return
		}
		for p := 0; p < n; p++ {
			for q := p + 1; q < n; q++ {
				if math.Abs(A[p][q]) < 1e-300 {
					continue
				}
				theta := (A[q][q] - A[p][p]) / (2 * A[p][q])
				t := math.Copysign(1, theta) / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta == 0 {
					t = 1
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				app, aqq, apq := A[p][p], A[q][q], A[p][q]
				A[p][p] = app - t*apq
				A[q][q] = aqq + t*apq
				A[p][q] = 0
				A[q][p] = 0

				for i := 0; i < n; i++ {
					if i == p || i == q {
						continue
					}
					aip, aiq := A[i][p], A[i][q]
					A[i][p] = c*aip - s*aiq
					A[p][i] = A[i][p]
					A[i][q] = s*aip + c*aiq
					A[q][i] = A[i][q]
				}
				for i := 0; i < n; i++ {
					vip, viq := V[i][p], V[i][q]
					V[i][p] = c*vip - s*viq
					V[i][q] = s*vip + c*viq
				}
			}
		}
	}
}
