package lqgame

// Small dense matrix helpers. Matrices are row-major [][]float64; no
// third-party linear algebra library appears anywhere in the retrieved
// example pack, so these are hand-rolled in the idiom of
// curioloop-optimizer's slsqp/lsei.go (plain nested-loop dense ops,
// tolerance-gated elimination).

func zerosMat(rows, cols int) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = make([]float64, cols)
	}
	return m
}

func zerosVec(n int) []float64 {
	return make([]float64, n)
}

func transpose(A [][]float64) [][]float64 {
	if len(A) == 0 {
		return nil
	}
	rows, cols := len(A), len(A[0])
	T := zerosMat(cols, rows)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			T[j][i] = A[i][j]
		}
	}
	return T
}

// mul computes A (rows x k) * B (k x cols).
func mul(A, B [][]float64) [][]float64 {
	if len(A) == 0 || len(B) == 0 {
		return nil
	}
	rows, k, cols := len(A), len(B), len(B[0])
	C := zerosMat(rows, cols)
	for i := 0; i < rows; i++ {
		for p := 0; p < k; p++ {
			a := A[i][p]
			if a == 0 {
				continue
			}
			row := B[p]
			for j := 0; j < cols; j++ {
				C[i][j] += a * row[j]
			}
		}
	}
	return C
}

// mulVec computes A (rows x k) * v (k).
func mulVec(A [][]float64, v []float64) []float64 {
	if len(A) == 0 {
		return nil
	}
	rows, k := len(A), len(v)
	out := zerosVec(rows)
	for i := 0; i < rows; i++ {
		sum := 0.0
		row := A[i]
		for p := 0; p < k; p++ {
			sum += row[p] * v[p]
		}
		out[i] = sum
	}
	return out
}

func add(A, B [][]float64) [][]float64 {
	rows, cols := len(A), 0
	if rows > 0 {
		cols = len(A[0])
	}
	C := zerosMat(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			C[i][j] = A[i][j] + B[i][j]
		}
	}
	return C
}

func addVec(a, b []float64) []float64 {
	out := zerosVec(len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out
}

func subVec(a, b []float64) []float64 {
	out := zerosVec(len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out
}

func scale(A [][]float64, s float64) [][]float64 {
	rows := len(A)
	cols := 0
	if rows > 0 {
		cols = len(A[0])
	}
	C := zerosMat(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			C[i][j] = A[i][j] * s
		}
	}
	return C
}
